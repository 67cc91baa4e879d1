package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/starrystar99/KWU-EE-Chatbot-RAG/config"
	"github.com/starrystar99/KWU-EE-Chatbot-RAG/gateway"
	"github.com/starrystar99/KWU-EE-Chatbot-RAG/handoff"
	"github.com/starrystar99/KWU-EE-Chatbot-RAG/session"
	"github.com/starrystar99/KWU-EE-Chatbot-RAG/tui"
)

func main() {
	cfg := config.Load()
	gw := gateway.NewClient(cfg.BackendURL, cfg.RequestTimeout)

	// advisory only: the chat still opens when the backend is down, every
	// workflow reports its own errors
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := gw.Health(ctx); err != nil {
		log.Printf("warning: backend %s unreachable: %v", cfg.BackendURL, err)
	}
	cancel()

	// --history flag: print the remote transcript as plain text (for
	// testing / scripting)
	if len(os.Args) > 1 && os.Args[1] == "--history" {
		turns, err := gw.FetchHistory(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, turn := range turns {
			fmt.Printf("user │ %s\n", turn.User)
			fmt.Printf("bot  │ %s\n", turn.Bot)
		}
		return
	}

	sess := session.New()
	seq := session.NewSequencer(sess, gw, handoff.NewStore(cfg.HandoffFile))

	m := tui.NewModel(seq)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
