// Package hosted implements a self-hosted Maven-layout repository.
//
// The server accepts PUT uploads and serves GET/HEAD downloads for any
// repository path. Release files are write-once: re-uploading identical
// bytes succeeds, different bytes are rejected with 409 Conflict. Only
// maven-metadata.xml and its checksum sidecars may be overwritten.
//
// It backs `pubkit serve` for local staging and acts as the repository
// in publisher tests.
package hosted

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pubkit/pkg/maven"
)

const defaultMaxUploadSize = 512 << 20

// Options configures a Server.
type Options struct {
	// Username and Password enable basic auth for uploads.
	Username string
	Password string

	// Token enables bearer auth for uploads.
	Token string

	// MaxUploadSize caps a single PUT body in bytes. Defaults to 512 MiB.
	MaxUploadSize int64

	// Logger receives one line per request. Defaults to a discard logger.
	Logger *log.Logger
}

// Server is a Maven-layout repository over a Storage backend.
type Server struct {
	store  Storage
	opts   Options
	logger *log.Logger
	mux    *chi.Mux

	writeMu sync.Mutex
}

// NewServer creates a server for store.
func NewServer(store Storage, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = defaultMaxUploadSize
	}
	s := &Server{store: store, opts: opts, logger: logger}

	m := chi.NewRouter()
	m.Use(middleware.Recoverer)
	m.Use(s.logRequests)
	m.Get("/*", s.handleGet)
	m.Head("/*", s.handleGet)
	m.With(s.requireAuth).Put("/*", s.handlePut)
	s.mux = m
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("repository listening", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	path, ok := repoPath(r)
	if !ok {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	data, err := s.store.Get(r.Context(), path)
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("read failed", "path", path, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType(path))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(data)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	path, ok := repoPath(r)
	if !ok {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxUploadSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		s.logger.Warn("read body failed", "path", path, "error", err)
		http.Error(w, "read body failed", http.StatusBadRequest)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	existing, err := s.store.Get(r.Context(), path)
	switch {
	case err == nil && bytes.Equal(existing, data):
		w.WriteHeader(http.StatusOK)
		return
	case err == nil && !overwritable(path):
		http.Error(w, "release files are immutable", http.StatusConflict)
		return
	case err != nil && !errors.Is(err, ErrNotFound):
		s.logger.Error("read failed", "path", path, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	if err := s.store.Put(r.Context(), path, data); err != nil {
		s.logger.Error("write failed", "path", path, "error", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authorized(r) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="pubkit"`)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

func (s *Server) authorized(r *http.Request) bool {
	if s.opts.Token == "" && s.opts.Username == "" {
		return true
	}
	if s.opts.Token != "" {
		if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
			return subtle.ConstantTimeCompare([]byte(tok), []byte(s.opts.Token)) == 1
		}
	}
	if s.opts.Username != "" {
		user, pass, ok := r.BasicAuth()
		return ok &&
			subtle.ConstantTimeCompare([]byte(user), []byte(s.opts.Username)) == 1 &&
			subtle.ConstantTimeCompare([]byte(pass), []byte(s.opts.Password)) == 1
	}
	return false
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start))
	})
}

// repoPath extracts the repository-relative path and rejects traversal.
func repoPath(r *http.Request) (string, bool) {
	p := strings.Trim(chi.URLParam(r, "*"), "/")
	if p == "" {
		return "", false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.ContainsRune(seg, '\\') {
			return "", false
		}
	}
	return p, true
}

// overwritable reports whether path may be replaced with different content.
func overwritable(path string) bool {
	return maven.IsMetadataPath(path)
}

func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".pom"), strings.HasSuffix(path, ".xml"):
		return "application/xml"
	case strings.HasSuffix(path, ".jar"):
		return "application/java-archive"
	case maven.IsChecksumPath(path):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
