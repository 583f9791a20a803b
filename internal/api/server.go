// Package api serves the hub content as JSON over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/footyhub/uganda-footy-hub/internal/gateway"
	"github.com/footyhub/uganda-footy-hub/internal/model"
)

const (
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 10 * time.Second
	maxBodyBytes          = 64 << 10
)

type Content interface {
	Events(ctx context.Context) ([]model.Event, error)
	Teams(ctx context.Context) ([]model.Team, error)
	News(ctx context.Context) ([]model.NewsArticle, error)
	Weather(ctx context.Context, city string) (model.WeatherSnapshot, error)
}

type Cache interface {
	Stats() []gateway.ResourceStats
	Invalidate(r gateway.Resource)
	InvalidateAll()
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

type Encyclopedia interface {
	Search(ctx context.Context, query string) []model.WikiHit
	Page(ctx context.Context, pageID int64) *model.WikiPage
}

type FavoriteStorage interface {
	Add(ctx context.Context, fav model.Favorite) (bool, error)
	Remove(ctx context.Context, kind model.FavoriteKind, itemID model.ID) (bool, error)
	Contains(ctx context.Context, kind model.FavoriteKind, itemID model.ID) (bool, error)
	List(ctx context.Context) (map[model.FavoriteKind][]model.Favorite, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

type CommentStorage interface {
	Add(ctx context.Context, entityID, author, text string) (model.Comment, error)
	List(ctx context.Context, entityID string) ([]model.Comment, error)
	Like(ctx context.Context, entityID, commentID string) (int, error)
	Delete(ctx context.Context, entityID, commentID string) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Options struct {
	Content   Content
	Cache     Cache
	Search    Searcher
	Wiki      Encyclopedia
	Favorites FavoriteStorage
	Comments  CommentStorage
	// DB is checked by /health; nil skips the check
	DB Pinger

	CORSOrigins    []string
	RequestTimeout time.Duration
	Logger         *zap.Logger
}

type Server struct {
	content   Content
	cache     Cache
	search    Searcher
	wiki      Encyclopedia
	favorites FavoriteStorage
	comments  CommentStorage
	db        Pinger
	clock     func() time.Time
	log       *zap.Logger
	router    chi.Router
}

func New(opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{
		content:   opts.Content,
		cache:     opts.Cache,
		search:    opts.Search,
		wiki:      opts.Wiki,
		favorites: opts.Favorites,
		comments:  opts.Comments,
		db:        opts.DB,
		clock:     time.Now,
		log:       opts.Logger.Named("api"),
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", s.listEvents)
		r.Get("/events/{id}", s.getEvent)

		r.Get("/teams", s.listTeams)
		r.Get("/teams/featured", s.featuredTeams)
		r.Get("/teams/{id}", s.getTeam)

		r.Get("/news", s.listNews)
		r.Get("/weather", s.getWeather)

		r.Get("/search", s.searchContent)
		r.Get("/wiki/search", s.searchWiki)
		r.Get("/wiki/pages/{id}", s.getWikiPage)

		r.Get("/favorites", s.listFavorites)
		r.Post("/favorites", s.addFavorite)
		r.Delete("/favorites", s.removeFavorite)
		r.Get("/favorites/{kind}/{id}", s.containsFavorite)

		r.Get("/comments/{entityID}", s.listComments)
		r.Post("/comments/{entityID}", s.addComment)
		r.Post("/comments/{entityID}/{commentID}/like", s.likeComment)
		r.Delete("/comments/{entityID}/{commentID}", s.deleteComment)

		r.Get("/cache", s.cacheStats)
		r.Delete("/cache/{resource}", s.invalidateCache)
	})

	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(started)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
