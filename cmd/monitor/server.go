package main

import (
	"bittrex-client/pkg/domain"
	"bittrex-client/pkg/domain/exchange"
	"bittrex-client/pkg/domain/model"
	"bittrex-client/pkg/domain/repository"
	"errors"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type server struct {
	repo     repository.MarketRepository
	exCli    exchange.PublicClient
	logger   domain.Logger
	interval time.Duration
	upgrader websocket.Upgrader
}

func newServer(repo repository.MarketRepository, exCli exchange.PublicClient, logger domain.Logger, interval time.Duration) *server {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &server{
		repo:     repo,
		exCli:    exCli,
		logger:   logger,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/{pair}", s.apiHandler).Methods(http.MethodGet).Queries("minute", "{minute:[0-9]+}")
	r.HandleFunc("/api/{pair}", s.apiHandler).Methods(http.MethodGet)
	r.HandleFunc("/ws/{pair}", s.streamHandler).Methods(http.MethodGet)
	return r
}

// Market APIレスポンスの1件
type Market struct {
	Datetime string `json:"datetime"`
	Bid      string `json:"bid"`
	Ask      string `json:"ask"`
	Last     string `json:"last"`
	Spread   string `json:"spread"`
	BidDepth string `json:"bid_depth"`
	AskDepth string `json:"ask_depth"`
}

// Response APIレスポンス
type Response struct {
	Pair    string   `json:"pair"`
	Markets []Market `json:"markets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) apiHandler(w http.ResponseWriter, r *http.Request) {
	pair, err := model.ParseToCurrencyPair(mux.Vars(r)["pair"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var duration *time.Duration
	if v := r.URL.Query().Get("minute"); v != "" {
		minute, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		d := time.Duration(minute) * time.Minute
		duration = &d
	}

	markets, err := s.repo.GetMarkets(pair, duration)
	if err != nil {
		s.logger.Error("failed to get markets, pair: %s; error: %v", pair.String(), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	res := Response{
		Pair:    pair.String(),
		Markets: []Market{},
	}
	for _, m := range markets {
		res.Markets = append(res.Markets, Market{
			Datetime: m.RecordedAt.Format(time.RFC3339),
			Bid:      m.Bid.String(),
			Ask:      m.Ask.String(),
			Last:     m.Last.String(),
			Spread:   m.Spread.String(),
			BidDepth: m.BidDepth.String(),
			AskDepth: m.AskDepth.String(),
		})
	}
	writeJSON(w, http.StatusOK, res)
}

// streamHandler ティッカーをWebSocketで定期配信する
func (s *server) streamHandler(w http.ResponseWriter, r *http.Request) {
	pair, err := model.ParseToCurrencyPair(mux.Vars(r)["pair"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade, error: %v", err)
		return
	}
	defer conn.Close()

	// クライアントからの切断を検知する
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ctx := r.Context()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		t, err := s.exCli.GetMarketTicker(ctx, pair.String())
		if err != nil {
			s.logger.Error("failed to get ticker, pair: %s; error: %v", pair.String(), err)
			var exErr *exchange.ExchangeError
			if errors.As(err, &exErr) {
				_ = conn.WriteJSON(errorResponse{Error: exErr.Message})
				return
			}
		} else if err := conn.WriteJSON(t); err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
