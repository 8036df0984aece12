// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NVIDIA/network-auditor/pkg/auditor"
	"github.com/NVIDIA/network-auditor/pkg/serializer"
)

const (
	triggerAPI      = "api"
	triggerSchedule = "schedule"

	auditFlightKey = "audit"
)

// Runner executes one audit over the inventory.
type Runner interface {
	Run(ctx context.Context) (*auditor.Summary, error)
}

// runAudit executes an audit, joining a run already in flight instead of
// starting a second one. Audits use the server context so a client that
// disconnects does not cancel a run other callers share.
func (s *Server) runAudit(trigger string) (*auditor.Summary, bool, error) {
	v, err, shared := s.flight.Do(auditFlightKey, func() (any, error) {
		summary, err := s.runner.Run(s.baseContext())
		if summary != nil {
			s.mu.Lock()
			s.latest = summary
			s.mu.Unlock()
		}
		return summary, err
	})
	auditTriggers.WithLabelValues(trigger, strconv.FormatBool(shared)).Inc()

	summary, _ := v.(*auditor.Summary)
	return summary, shared, err
}

// Latest returns the summary of the most recent audit, or nil.
func (s *Server) Latest() *auditor.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// handleAudits handles POST /v1/audits (run now) and GET /v1/audits
// (latest summary).
func (s *Server) handleAudits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		summary, shared, err := s.runAudit(triggerAPI)
		if err != nil {
			s.logger.Error("audit failed", slog.Any("error", err))
			status, code := errorFor(err)
			WriteError(w, r, status, code, err.Error(), status != http.StatusInternalServerError, nil)
			return
		}
		w.Header().Set("X-Audit-Shared", strconv.FormatBool(shared))
		serializer.RespondJSON(w, http.StatusOK, summary)

	case http.MethodGet:
		latest := s.Latest()
		if latest == nil {
			WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "no audit has completed yet", true, nil)
			return
		}
		serializer.RespondJSON(w, http.StatusOK, latest)

	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", false, nil)
	}
}

// schedule runs an audit every Interval until ctx is done.
func (s *Server) schedule(ctx context.Context) error {
	if s.config.AuditOnStart {
		s.scheduledAudit()
	}
	if s.config.Interval <= 0 {
		return nil
	}

	ticker := s.clock.NewTicker(s.config.Interval)
	defer ticker.Stop()

	s.logger.Info("audit scheduler started", slog.Duration("interval", s.config.Interval))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			s.scheduledAudit()
		}
	}
}

func (s *Server) scheduledAudit() {
	summary, shared, err := s.runAudit(triggerSchedule)
	if err != nil {
		s.logger.Error("scheduled audit failed", slog.Any("error", err))
		return
	}
	s.logger.Info("scheduled audit complete",
		slog.String("run_id", summary.RunID),
		slog.Bool("shared", shared),
		slog.Int("devices", len(summary.Devices)))
}
