package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/biqgook/raffletool/internal/config"
	"github.com/biqgook/raffletool/internal/models"
	"github.com/biqgook/raffletool/internal/raffle"
	"github.com/biqgook/raffletool/internal/reddit"
	"github.com/biqgook/raffletool/internal/storage"
)

// SubmissionFetcher supplies the submission snapshot for a post URL.
type SubmissionFetcher interface {
	FetchSubmission(postURL string) (*models.Submission, error)
}

// Server exposes the reconciliation engine and the contact directory over
// REST.
type Server struct {
	engine  *raffle.Engine
	fetcher SubmissionFetcher
	store   storage.Storage
	cfg     *config.Config
	log     *zap.SugaredLogger
	router  *gin.Engine
	bots    map[string]struct{}

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New builds the server and its routes.
func New(cfg *config.Config, engine *raffle.Engine, fetcher SubmissionFetcher,
	store storage.Storage, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	bots := make(map[string]struct{}, len(cfg.Raffle.FilteredBots))
	for _, name := range cfg.Raffle.FilteredBots {
		bots[name] = struct{}{}
	}

	s := &Server{
		engine:   engine,
		fetcher:  fetcher,
		store:    store,
		cfg:      cfg,
		log:      log,
		bots:     bots,
		limiters: make(map[string]*rate.Limiter),
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)

	apiGroup := router.Group("/api", s.rateLimit())
	apiGroup.POST("/post/comments", s.postComments)
	apiGroup.POST("/post/validate", s.postValidate)

	apiGroup.GET("/users", s.listUsers)
	apiGroup.POST("/users", s.addUser)
	apiGroup.GET("/users/:username", s.getUser)
	apiGroup.PUT("/users/:username", s.updateUser)
	apiGroup.DELETE("/users/:username", s.deleteUser)

	s.router = router
	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	s.log.Infow("starting server", "addr", addr)
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// rateLimit applies a per-client-IP token bucket.
func (s *Server) rateLimit() gin.HandlerFunc {
	perMinute := s.cfg.RateLimit.RequestsPerMinute
	burst := s.cfg.RateLimit.Burst
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = perMinute
	}
	every := rate.Every(time.Minute / time.Duration(perMinute))

	return func(c *gin.Context) {
		ip := c.ClientIP()
		s.mu.Lock()
		limiter, ok := s.limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(every, burst)
			s.limiters[ip] = limiter
		}
		s.mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":   "raffletool",
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

type postRequest struct {
	PostURL        string `json:"post_url" binding:"required"`
	AllocationText string `json:"allocation_text"`
}

// postComments fetches a post and runs the engine without a supplied
// allocation; validation still appears when a listing is discoverable in the
// post body or host comments.
func (s *Server) postComments(c *gin.Context) {
	s.reconcileHandler(c, false)
}

// postValidate is the full reconciliation endpoint; an allocation_text in the
// request takes precedence over any discovered listing.
func (s *Server) postValidate(c *gin.Context) {
	s.reconcileHandler(c, true)
}

func (s *Server) reconcileHandler(c *gin.Context, allowAllocationText bool) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing post_url in request body"})
		return
	}
	if reddit.ExtractPostID(req.PostURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reddit url"})
		return
	}

	sub, err := s.fetcher.FetchSubmission(req.PostURL)
	if err != nil {
		if errors.Is(err, reddit.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reddit url"})
			return
		}
		s.log.Errorw("fetch failed", "url", req.PostURL, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch post"})
		return
	}

	allocationText := ""
	if allowAllocationText {
		allocationText = req.AllocationText
	}
	result := s.engine.Reconcile(sub, allocationText)

	response := gin.H{
		"id":         sub.ID,
		"title":      sub.Title,
		"author":     sub.Author,
		"created_at": sub.CreatedAt,
		"url":        sub.URL,
		"comments":   s.filterBots(result.Comments),
	}
	if summary := raffle.SummarizeTitle(sub.Title); summary != nil {
		response["summary"] = summary
	}
	if result.Validation != nil {
		response["validation"] = result.Validation
		response["official_allocation"] = result.OfficialAllocation
	}

	c.JSON(http.StatusOK, response)
}

// filterBots drops comments by configured automation accounts. Presentation
// concern only; the engine never sees the filter.
func (s *Server) filterBots(comments []models.AnnotatedComment) []models.AnnotatedComment {
	filtered := make([]models.AnnotatedComment, 0, len(comments))
	for _, c := range comments {
		if _, isBot := s.bots[c.Author]; isBot {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}

type userRequest struct {
	RedditUsername string `json:"reddit_username"`
	PayPalName     string `json:"paypal_name"`
	DiscordName    string `json:"discord_name"`
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.store.ListUsers()
	if err != nil {
		s.log.Errorw("list users failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.store.GetUser(c.Param("username"))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) addUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RedditUsername == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing reddit_username"})
		return
	}
	user := &models.User{
		RedditUsername: req.RedditUsername,
		PayPalName:     req.PayPalName,
		DiscordName:    req.DiscordName,
	}
	if err := s.store.AddUser(user); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	user := &models.User{
		RedditUsername: c.Param("username"),
		PayPalName:     req.PayPalName,
		DiscordName:    req.DiscordName,
	}
	if err := s.store.UpdateUser(user); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.store.DeleteUser(c.Param("username")); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("username")})
}
