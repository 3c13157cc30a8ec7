package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"pitch_agent_service/agent"
	"pitch_agent_service/config"
	"pitch_agent_service/search"
	"pitch_agent_service/server"
	"pitch_agent_service/session"
	"pitch_agent_service/workflow"
)

func main() {
	configPath := flag.String("config", "config/config.json", "path to config.json")
	serve := flag.Bool("serve", false, "start the HTTP server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	describe := flag.String("describe", "", "run the workflow once for this MVP description (interactive approval)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("service", "pitch-agent")

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	engine, store, err := buildEngine(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch {
	case *serve:
		if err := runServer(cfg, engine, store, logger, *addr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *describe != "":
		if err := runInteractive(context.Background(), engine, *describe); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "nothing to do: pass --serve or --describe \"your MVP description\"")
		os.Exit(1)
	}
}

func buildEngine(cfg config.Config, logger *slog.Logger) (*workflow.Engine, *session.MemoryStore, error) {
	llm, err := buildLLM(cfg.LLM)
	if err != nil {
		return nil, nil, err
	}
	gate := workflow.NewScoreGate(cfg.Threshold())
	searcher := search.NewDuckDuckGo(
		&http.Client{Timeout: cfg.CallTimeout()},
		cfg.Search.BaseURL,
		cfg.Search.MaxSnippets,
	)
	steps, err := agent.NewSteps(agent.Config{
		LLM:     agent.WithRetry(llm),
		Search:  searcher,
		Gate:    gate,
		Timeout: cfg.CallTimeout(),
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}
	store := session.NewMemoryStore()
	engine, err := workflow.NewEngine(steps, gate, workflow.NewIterationPolicy(), store, logger)
	if err != nil {
		return nil, nil, err
	}
	return engine, store, nil
}

func buildLLM(cfg *config.LLM) (agent.LLMClient, error) {
	if cfg == nil || cfg.Provider == "" || cfg.Provider == "mock" {
		return agent.MockLLM{}, nil
	}
	switch cfg.Provider {
	case "openai":
		return agent.NewOpenAILLMFromConfig(&agent.LLMSettings{
			Provider: cfg.Provider,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
		})
	case "groq", "deepseek":
		// OpenAI-compatible endpoints; base_url is mandatory.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider %s requires base_url (OpenAI-compatible endpoint)", cfg.Provider)
		}
		return agent.NewOpenAILLMFromConfig(&agent.LLMSettings{
			Provider: cfg.Provider,
			Model:    cfg.Model,
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
		})
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

func runServer(cfg config.Config, engine *workflow.Engine, store *session.MemoryStore, logger *slog.Logger, addrOverride string) error {
	srv, err := server.New(engine, logger)
	if err != nil {
		return err
	}
	listen := cfg.ServerAddr
	if addrOverride != "" {
		listen = addrOverride
	}
	if listen == "" {
		listen = ":8080"
	}

	if ttl := cfg.SessionTTL(); ttl > 0 {
		reaper := session.NewReaper(store, ttl, time.Minute, session.SystemClock(), logger)
		go reaper.Run(context.Background())
	}
	logger.Info("starting http server", "addr", listen)
	return http.ListenAndServe(listen, srv.Routes())
}

// runInteractive drives one workflow run in the terminal, standing in
// for the approval endpoint with a stdin prompt.
func runInteractive(ctx context.Context, engine *workflow.Engine, description string) error {
	sess, err := engine.Start(ctx, description)
	if err != nil {
		return err
	}
	reader := bufio.NewReader(os.Stdin)

	for !sess.State.Phase.Terminal() {
		fmt.Println(strings.Repeat("=", 60))
		fmt.Println("HUMAN REVIEW REQUIRED")
		fmt.Println(strings.Repeat("=", 60))
		fmt.Printf("\nCurrent Pitch:\n%s\n\n", sess.State.Pitch)
		fmt.Printf("Critique Score: %.1f/10 (%s)\n", sess.State.Critique.Overall, sess.State.Critique.Decision)
		fmt.Printf("Feedback: %s\n\n", sess.State.Critique.Feedback)
		fmt.Print("Your decision ([A]pprove / [R]eject): ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		approved := strings.ToUpper(strings.TrimSpace(line)) == "A"
		feedback := ""
		if !approved {
			fmt.Print("What should be improved? ")
			if feedback, err = reader.ReadString('\n'); err != nil {
				return err
			}
			feedback = strings.TrimSpace(feedback)
		}
		if sess, err = engine.SubmitApproval(ctx, sess.ID, approved, feedback); err != nil {
			return err
		}
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("FINAL PITCH PACKAGE (%s)\n", sess.State.Phase)
	fmt.Println(strings.Repeat("=", 60))
	out, err := json.MarshalIndent(sess.State.FinalPackage, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
