package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/probeum/pow-consensus/internal/powlog"
	"github.com/probeum/pow-consensus/pownode"
)

// statusResponse is what GET /status reports: a supplemented operability
// feature with no counterpart in the original engine (§9's Non-goals only
// exclude gossip/voting/finalization/smart-contract execution/persistence/
// GPU mining, not ambient introspection).
type statusResponse struct {
	Engine     string       `json:"engine"`
	Version    string       `json:"version"`
	InstanceID string       `json:"instance_id"`
	Guards     []pownode.Guard `json:"guards"`
	Hashrate   float64      `json:"hashrate"`
	Difficulty uint32       `json:"initial_difficulty"`
}

// runStatusServer serves the status endpoint on addr until the HTTP server
// fails; there is no shutdown path. It blocks, so call it from its own
// goroutine.
func runStatusServer(addr string, engine *pownode.Engine, instanceID uuid.UUID, log powlog.Logger) error {
	router := httprouter.New()
	router.GET("/status", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		node := engine.Node()
		resp := statusResponse{
			Engine:     engine.Name(),
			Version:    engine.Version(),
			InstanceID: instanceID.String(),
			Guards:     node.GuardsSnapshot(),
			Hashrate:   node.Hashrate(),
			Difficulty: node.Config().InitialDifficulty,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})

	handler := cors.AllowAll().Handler(router)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	log.Info("Serving status endpoint", "addr", addr)
	return server.ListenAndServe()
}
