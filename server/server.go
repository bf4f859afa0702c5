// Package server exposes the generated playlist over HTTP so players
// can subscribe to it directly.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server serves the playlist file produced by a sync run. It never
// triggers reconciliation itself; the file on disk is the contract
// between the pipeline and the server.
type Server struct {
	baseLogger   *zap.SugaredLogger
	playlistPath string
}

// New creates a playlist server for the given playlist file.
func New(logger *zap.SugaredLogger, playlistPath string) Server {
	return Server{
		baseLogger:   logger,
		playlistPath: playlistPath,
	}
}

func writeResponse(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
}

// Serve starts the http server and is a blocking call
func (s Server) Serve(port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil {
			s.baseLogger.Error(err.Error())
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(ctx)
}

// Handler builds the route table.
func (s Server) Handler() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)
	rtr.HandleFunc("/playlist.m3u", s.Playlist()).Methods(http.MethodGet)
	rtr.HandleFunc("/status", s.Status()).Methods(http.MethodGet)

	return handlers.CompressHandler(rtr)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

// Playlist serves the playlist file as written by the last sync.
func (s Server) Playlist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(s.playlistPath); err != nil {
			writeResponse(w, http.StatusNotFound, GenericResponse{Error: "no playlist generated yet"})
			return
		}

		w.Header().Set("content-type", "application/vnd.apple.mpegurl")
		http.ServeFile(w, r, s.playlistPath)
	}
}

type statusResponse struct {
	Channels int    `json:"channels"`
	Size     string `json:"size"`
	Updated  string `json:"updated"`
}

// Status reports how fresh and how large the served playlist is.
func (s Server) Status() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := os.Stat(s.playlistPath)
		if err != nil {
			writeResponse(w, http.StatusNotFound, GenericResponse{Error: "no playlist generated yet"})
			return
		}

		channels, err := countChannels(s.playlistPath)
		if err != nil {
			writeResponse(w, http.StatusInternalServerError, GenericResponse{Error: err.Error()})
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: statusResponse{
			Channels: channels,
			Size:     humanize.Bytes(uint64(info.Size())),
			Updated:  humanize.Time(info.ModTime()),
		}})
	}
}

func countChannels(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "#EXTINF:") {
			count++
		}
	}

	return count, scanner.Err()
}
