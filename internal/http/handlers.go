package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/efuayankey/NextToIntern/internal/dashboard"
	"github.com/efuayankey/NextToIntern/internal/domain"
	"github.com/efuayankey/NextToIntern/internal/log"
	"github.com/efuayankey/NextToIntern/internal/metrics"
	"github.com/efuayankey/NextToIntern/internal/onboarding"
	"github.com/efuayankey/NextToIntern/internal/queue"
	"github.com/efuayankey/NextToIntern/internal/repo"
	"github.com/efuayankey/NextToIntern/internal/security"
)

type Handler struct {
	Store           *repo.Store
	JWTSecret       string
	RefreshTTL      time.Duration
	Redis           *repo.Redis
	RateLimitPerMin int
	Events          queue.Publisher
	Exchange        string
}

func NewHandler(store *repo.Store, jwtSecret string, refreshDays int, rds *repo.Redis, rlPerMin int, pub queue.Publisher, exchange string) *Handler {
	return &Handler{
		Store:           store,
		JWTSecret:       jwtSecret,
		RefreshTTL:      time.Duration(refreshDays) * 24 * time.Hour,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
		Events:          pub,
		Exchange:        exchange,
	}
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register godoc
// @Summary Register with an institutional email
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	// the domain gate runs before any store access
	if !domain.IsInstitutionalEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please use your " + domain.InstitutionalDomain + " email address"})
		return
	}
	if len(in.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 characters"})
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
		return
	}
	u := &domain.User{Email: email, PasswordHash: hash, Name: name}
	if err := h.Store.CreateUser(c.Request.Context(), u); err != nil {
		if err == repo.ErrEmailTaken {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		log.Errorf("create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	go h.Events.Publish(c.Request.Context(), h.Exchange, queue.KeyUserRegistered,
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name},
		requestID(c))

	c.JSON(http.StatusCreated, gin.H{"id": u.ID.Hex()})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginResp struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} loginResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := h.Store.FindUserByEmail(c.Request.Context(), email)
	if err != nil || u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Email, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	ref, err := security.NewRefreshToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh gen"})
		return
	}
	if err := h.Store.SaveRefresh(c.Request.Context(), u.ID, ref, h.RefreshTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh save"})
		return
	}

	go h.Events.Publish(c.Request.Context(), h.Exchange, queue.KeyUserLoggedIn,
		queue.UserLoggedIn{UserID: u.ID, Email: u.Email},
		requestID(c))

	c.JSON(http.StatusOK, loginResp{Access: tok, Refresh: ref})
}

type refreshReq struct {
	Refresh string `json:"refresh"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var in refreshReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	rt, err := h.Store.FindValidRefresh(c.Request.Context(), in.Refresh)
	if err != nil || rt == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh"})
		return
	}
	u, err := h.Store.FindUserByID(c.Request.Context(), rt.UserID)
	if err != nil || u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), u.Email, 15*time.Minute)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": tok})
}

type logoutReq struct {
	Refresh string `json:"refresh"`
}

func (h *Handler) Logout(c *gin.Context) {
	var in logoutReq
	if err := c.ShouldBindJSON(&in); err != nil || in.Refresh == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Store.RevokeRefresh(c.Request.Context(), in.Refresh); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "revoke failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	u := h.currentUser(c)
	if u == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id": u.ID.Hex(), "email": u.Email, "name": u.Name, "created_at": u.CreatedAt,
	})
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// currentUser loads the document for the authenticated uid, writing the error
// response itself when it cannot.
func (h *Handler) currentUser(c *gin.Context) *domain.User {
	uid := c.GetString(ctxUID)
	u, err := h.Store.GetProfile(c.Request.Context(), uid)
	if err != nil || u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return nil
	}
	return u
}

type profileReq struct {
	Major           string   `json:"major"`
	Year            string   `json:"year"`
	CareerGoals     []string `json:"careerGoals"`
	TargetCompanies []string `json:"targetCompanies"`
	Availability    string   `json:"availability"`
}

// formFromReq rebuilds a wizard form from the payload so the HTTP layer runs
// the same validators the wizard does. Values outside the catalogs are
// rejected by field name.
func formFromReq(in profileReq) (onboarding.Form, string) {
	f := onboarding.NewForm()
	if in.Major != "" {
		if !domain.ValidMajor(in.Major) {
			return f, "major"
		}
		f.SetMajor(in.Major)
	}
	if in.Year != "" {
		if !domain.ValidYear(in.Year) {
			return f, "year"
		}
		f.SetYear(in.Year)
	}
	for _, g := range in.CareerGoals {
		if !domain.ValidCareerGoal(g) {
			return f, "careerGoals"
		}
		f.Goals.Add(g)
	}
	for _, co := range in.TargetCompanies {
		if !domain.ValidCompany(co) {
			return f, "targetCompanies"
		}
		f.Companies.Add(co)
	}
	if in.Availability != "" {
		if !domain.ValidAvailability(in.Availability) {
			return f, "availability"
		}
		f.SetAvailability(in.Availability)
	}
	return f, ""
}

// GetProfile godoc
// @Summary Current profile document
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /api/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	u := h.currentUser(c)
	if u == nil {
		return
	}
	c.JSON(http.StatusOK, u)
}

// CompleteOnboarding godoc
// @Summary Persist the onboarding wizard result
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body profileReq true "attributes"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/profile/onboarding [post]
func (h *Handler) CompleteOnboarding(c *gin.Context) {
	var in profileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	form, badField := formFromReq(in)
	if badField != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for " + badField})
		return
	}
	for _, step := range onboarding.Steps() {
		if !step.Valid(&form) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "step " + step.ID + " incomplete"})
			return
		}
	}

	u := h.currentUser(c)
	if u == nil {
		return
	}
	if u.OnboardingComplete {
		c.JSON(http.StatusConflict, gin.H{"error": "onboarding already complete"})
		return
	}

	if err := h.Store.CompleteOnboarding(c.Request.Context(), u.ID.Hex(), form.Attrs()); err != nil {
		if err == repo.ErrNotFound {
			// raced with another completion; the bonus was not granted twice
			c.JSON(http.StatusConflict, gin.H{"error": "onboarding already complete"})
			return
		}
		log.Errorf("complete onboarding for %s: %v", u.ID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	metrics.OnboardingsCompleted.Inc()

	updated, err := h.Store.FindUserByID(c.Request.Context(), u.ID)
	if err != nil || updated == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}

	go h.Events.Publish(c.Request.Context(), h.Exchange, queue.KeyOnboardingCompleted,
		queue.OnboardingCompleted{
			UserID:       u.ID.Hex(),
			Major:        updated.Major,
			Year:         updated.Year,
			CareerGoals:  updated.CareerGoals,
			PointsBonus:  domain.OnboardingBonus,
			Availability: updated.Availability,
		},
		requestID(c))

	c.JSON(http.StatusOK, updated)
}

// UpdateProfile godoc
// @Summary Save profile edits
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body profileReq true "attributes"
// @Success 200 {object} domain.User
// @Failure 400 {object} map[string]string
// @Router /api/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in profileReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	form, badField := formFromReq(in)
	if badField != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid value for " + badField})
		return
	}

	u := h.currentUser(c)
	if u == nil {
		return
	}
	if err := h.Store.UpdateProfileAttrs(c.Request.Context(), u.ID.Hex(), form.Attrs()); err != nil {
		log.Errorf("update profile for %s: %v", u.ID.Hex(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	updated, err := h.Store.FindUserByID(c.Request.Context(), u.ID)
	if err != nil || updated == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reload failed"})
		return
	}

	go h.Events.Publish(c.Request.Context(), h.Exchange, queue.KeyProfileUpdated,
		queue.ProfileUpdated{UserID: u.ID.Hex()},
		requestID(c))

	c.JSON(http.StatusOK, updated)
}

// Dashboard godoc
// @Summary Read-only profile summary
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dashboard.Summary
// @Failure 401 {object} map[string]string
// @Router /api/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	u := h.currentUser(c)
	if u == nil {
		return
	}
	c.JSON(http.StatusOK, dashboard.Summarize(u))
}
