// Package api provides the HTTP surface of the bonus schedule generator.
// This is a capability module that can be enabled via the CLI or used
// programmatically.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remarkableland/bonusgen/render"
	"github.com/remarkableland/bonusgen/schedule"
	"github.com/remarkableland/bonusgen/schedule/closeio"
	"github.com/remarkableland/bonusgen/schedule/common"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	mux    *http.ServeMux
}

// New creates a new API server with the given configuration
func New(cfg Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/schedule", s.handleSchedule)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server.
// This allows the server to be used with custom http.Server configurations.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleSchedule accepts a Close.com export upload plus run parameters and
// responds with one rendered artifact, or the computed schedule as JSON
// when no format is requested.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := closeio.ReadRecords(file)
	if err != nil {
		log.Printf("%sError reading export: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not read export: "+err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := parseScheduleConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := schedule.Build(records, cfg)
	if errors.Is(err, schedule.ErrEmptyPeriod) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "no sold records for " + cfg.PeriodEnd.Format("January 2006"),
		})
		return
	}
	if err != nil {
		log.Printf("%sError building schedule: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not build schedule: "+err.Error(), http.StatusInternalServerError)
		return
	}

	format := coalesce(r.FormValue("format"), r.URL.Query().Get("format"))
	if format == "" || format == "json" {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
		return
	}

	if err := s.writeArtifact(w, result, format); err != nil {
		log.Printf("%sError rendering %s: %v", s.config.LogPrefix, format, err)
	}
}

var contentTypes = map[string]string{
	"csv":  "text/csv",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"pdf":  "application/pdf",
}

func (s *Server) writeArtifact(w http.ResponseWriter, result *schedule.Schedule, format string) error {
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown format %q", format), http.StatusBadRequest)
		return nil
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", render.Filename(result.Meta.PeriodEnd, format)))

	switch format {
	case "csv":
		return render.CSV(w, result)
	case "xlsx":
		return render.XLSX(w, result)
	default:
		return render.PDF(w, result)
	}
}

// parseScheduleConfig builds the pipeline config from request form values.
// Absent values fall back to the same defaults the CLI uses.
func parseScheduleConfig(r *http.Request) (schedule.Config, error) {
	periodEnd := time.Now()
	if raw := coalesce(r.FormValue("month_ending"), r.URL.Query().Get("month_ending")); raw != "" {
		parsed, ok := common.ParseTimestamp(raw)
		if !ok {
			return schedule.Config{}, fmt.Errorf("unrecognized month ending date %q", raw)
		}
		periodEnd = parsed
	}

	addend := common.DefaultFixedAddend
	if raw := r.FormValue("mls_cost"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return schedule.Config{}, fmt.Errorf("invalid mls_cost %q", raw)
		}
		addend = parsed
	}

	adjustment := decimal.Zero
	if raw := r.FormValue("prior_adjustment"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return schedule.Config{}, fmt.Errorf("invalid prior_adjustment %q", raw)
		}
		adjustment = parsed
	}

	var team []string
	for _, name := range strings.FieldsFunc(r.FormValue("team"), func(r rune) bool { return r == ',' || r == '\n' }) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			team = append(team, trimmed)
		}
	}

	return schedule.Config{
		Metadata: common.Metadata{
			PeriodEnd:      periodEnd,
			TeamNames:      team,
			FixedAddend:    addend,
			CurrencySymbol: "$",
		},
		PriorAdjustment: adjustment,
	}, nil
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
