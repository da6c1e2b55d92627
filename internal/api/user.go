package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/receptorium/backend/internal/middleware"
	"github.com/receptorium/backend/internal/models"
	"github.com/receptorium/backend/internal/service"
)

type UserHandler struct {
	users    *service.UserService
	lists    *service.ListService
	authSvc  *service.AuthService
	auth     middleware.TokenValidator
	pageSize int
}

func NewUserHandler(
	users *service.UserService,
	lists *service.ListService,
	authSvc *service.AuthService,
	auth middleware.TokenValidator,
	pageSize int,
) *UserHandler {
	return &UserHandler{
		users:    users,
		lists:    lists,
		authSvc:  authSvc,
		auth:     auth,
		pageSize: pageSize,
	}
}

// RegisterRoutes wires the user surface. Registration and the user list are
// open; retrieval and everything below requires a caller. Activation,
// username changes and account deletion are disabled as a product decision.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.AuthOptional(h.auth)
	required := middleware.AuthRequired(h.auth)

	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("", optional, h.ListUsers)
		users.GET("/me", required, h.Me)
		users.GET("/subscriptions", required, h.Subscriptions)
		users.GET("/:id", required, h.GetUser)
		users.POST("/:id/subscribe", required, h.Subscribe)
		users.DELETE("/:id/subscribe", required, h.Unsubscribe)
		users.POST("/set_password", required, h.SetPassword)

		users.POST("/activation", rejectAll)
		users.POST("/resend_activation", rejectAll)
		users.POST("/set_username", rejectAll)
		users.POST("/reset_username", rejectAll)
		users.DELETE("/me", rejectAll)
	}
}

func userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "not found"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		switch err {
		case service.ErrEmailTaken, service.ErrUsernameTaken:
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		default:
			respondServiceError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, buildUserResponse(user, false))
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c, h.pageSize)
	users, total, err := h.users.List(c.Request.Context(), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	viewer := middleware.UserID(c)
	ids := make([]uuid.UUID, 0, len(users))
	for i := range users {
		ids = append(ids, users[i].ID)
	}
	followed, err := h.users.FollowedSet(c.Request.Context(), viewer, ids)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results := make([]UserResponse, 0, len(users))
	for i := range users {
		results = append(results, buildUserResponse(&users[i], followed[users[i].ID]))
	}
	c.JSON(http.StatusOK, paginate(c, total, page, limit, results))
}

func (h *UserHandler) Me(c *gin.Context) {
	viewer := middleware.UserID(c)
	user, err := h.users.Get(c.Request.Context(), *viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponse(user, false))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	viewer := middleware.UserID(c)
	followed, err := h.users.FollowedSet(c.Request.Context(), viewer, []uuid.UUID{user.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildUserResponse(user, followed[user.ID]))
}

// recipesLimit reads the recipes_limit parameter capping nested recipes in
// subscription payloads; 0 means uncapped.
func recipesLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	viewer := middleware.UserID(c)
	page, limit := pageParams(c, h.pageSize)

	subs, total, err := h.users.Subscriptions(c.Request.Context(), *viewer, page, limit, recipesLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		results = append(results, buildSubscriptionResponse(&subs[i]))
	}
	c.JSON(http.StatusOK, paginate(c, total, page, limit, results))
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	viewer := middleware.UserID(c)

	var author *models.User
	author, err := h.lists.Follow(c.Request.Context(), *viewer, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sub, err := h.users.AuthorPreview(c.Request.Context(), author.ID, recipesLimit(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildSubscriptionResponse(sub))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	viewer := middleware.UserID(c)
	if err := h.lists.Unfollow(c.Request.Context(), *viewer, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) SetPassword(c *gin.Context) {
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	viewer := middleware.UserID(c)
	if err := h.authSvc.ChangePassword(c.Request.Context(), *viewer, req.CurrentPassword, req.NewPassword); err != nil {
		if err == service.ErrWrongPassword {
			c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
			return
		}
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
