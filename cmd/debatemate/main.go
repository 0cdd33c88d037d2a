package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/comigor/debatemate/internal/config"
	"github.com/comigor/debatemate/internal/engine"
	"github.com/comigor/debatemate/internal/generator"
	"github.com/comigor/debatemate/internal/logger"
	"github.com/comigor/debatemate/internal/server"
	"github.com/comigor/debatemate/internal/store"
	"github.com/comigor/debatemate/internal/users"
)

// newChatClient builds the OpenAI-compatible client. BaseURL points it at any
// compatible endpoint, including Gemini's OpenAI surface.
func newChatClient(cfg config.LLMConfig) *openai.Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L.Error("failed to load configuration", "error", err)
		return
	}
	logger.SetLevel(cfg.Log.Level)

	debates := store.Select(cfg.Store)
	accounts := users.SelectStore(cfg.Store)

	gen := generator.New(newChatClient(cfg.LLM), cfg.LLM.Model, rand.New(rand.NewSource(time.Now().UnixNano())))
	eng := engine.New(debates, gen)
	srv := server.New(eng, users.NewService(accounts))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.L.Info("starting server", "address", addr)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		logger.L.Error("failed to start server", "error", err)
	}
}
