package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/receptorium/backend/internal/middleware"
	"github.com/receptorium/backend/internal/models"
	"github.com/receptorium/backend/internal/service"
)

type RecipeHandler struct {
	recipes  *service.RecipeService
	lists    *service.ListService
	shopping *service.ShoppingService
	users    *service.UserService
	images   *service.ImageService
	auth     middleware.TokenValidator
	pageSize int
}

func NewRecipeHandler(
	recipes *service.RecipeService,
	lists *service.ListService,
	shopping *service.ShoppingService,
	users *service.UserService,
	images *service.ImageService,
	auth middleware.TokenValidator,
	pageSize int,
) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		lists:    lists,
		shopping: shopping,
		users:    users,
		images:   images,
		auth:     auth,
		pageSize: pageSize,
	}
}

// RegisterRoutes wires the recipe surface. Read endpoints take optional auth
// so viewer-relative fields can be computed; every write requires a caller.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.AuthOptional(h.auth)
	required := middleware.AuthRequired(h.auth)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.POST("", required, h.CreateRecipe)
		recipes.PUT("/:id", required, h.UpdateRecipe)
		recipes.PATCH("/:id", required, h.UpdateRecipe)
		recipes.DELETE("/:id", required, h.DeleteRecipe)
		recipes.POST("/:id/favorite", required, h.AddFavorite)
		recipes.DELETE("/:id/favorite", required, h.RemoveFavorite)
		recipes.POST("/:id/shopping_cart", required, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", required, h.RemoveFromCart)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)
	}
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"errors": "not found"})
		return uuid.Nil, false
	}
	return id, true
}

// buildResponses assembles the nested representation for a page of recipes,
// batching the viewer-relative lookups.
func (h *RecipeHandler) buildResponses(c *gin.Context, recipes []models.Recipe) ([]RecipeResponse, error) {
	viewer := middleware.UserID(c)

	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].ID)
		authorIDs = append(authorIDs, recipes[i].AuthorID)
	}

	flags, err := h.recipes.Flags(c.Request.Context(), viewer, recipeIDs)
	if err != nil {
		return nil, err
	}
	followed, err := h.users.FollowedSet(c.Request.Context(), viewer, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, buildRecipeResponse(&recipes[i], flags[recipes[i].ID], followed[recipes[i].AuthorID]))
	}
	return out, nil
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewer := middleware.UserID(c)

	filter := service.RecipeFilter{Viewer: viewer}
	if author := c.Query("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid author id"})
			return
		}
		filter.AuthorID = &id
	}
	if slugs := c.QueryArray("tags"); len(slugs) > 0 {
		filter.TagSlugs = slugs
	}
	if viewer != nil {
		filter.Favorited = c.Query("is_favorited") == "1"
		filter.InCart = c.Query("is_in_shopping_cart") == "1"
	}

	page, limit := pageParams(c, h.pageSize)
	recipes, total, err := h.recipes.List(c.Request.Context(), &filter, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results, err := h.buildResponses(c, recipes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, paginate(c, total, page, limit, results))
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	results, err := h.buildResponses(c, []models.Recipe{*recipe})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results[0])
}

// storeImage turns the submitted base64 payload into a stored media reference.
func (h *RecipeHandler) storeImage(c *gin.Context, payload string) (string, bool) {
	ref, err := h.images.StoreDataURI(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid image payload"})
		return "", false
	}
	return ref, true
}

func toIngredientAmounts(entries []ingredientAmountRequest) []service.IngredientAmount {
	out := make([]service.IngredientAmount, 0, len(entries))
	for _, e := range entries {
		out = append(out, service.IngredientAmount{ID: e.ID, Amount: e.Amount})
	}
	return out
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	viewer := middleware.UserID(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	image, ok := h.storeImage(c, req.Image)
	if !ok {
		return
	}

	in := service.RecipeInput{
		Name:        &req.Name,
		Text:        &req.Text,
		CookingTime: &req.CookingTime,
		Image:       &image,
		TagIDs:      req.Tags,
		Ingredients: toIngredientAmounts(req.Ingredients),
	}
	recipe, err := h.recipes.Create(c.Request.Context(), *viewer, &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	results, err := h.buildResponses(c, []models.Recipe{*recipe})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, results[0])
}

// loadOwnRecipe fetches the target and enforces the author-only write policy.
func (h *RecipeHandler) loadOwnRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, ok := recipeID(c)
	if !ok {
		return nil, false
	}
	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	viewer := middleware.UserID(c)
	if viewer == nil || recipe.AuthorID != *viewer {
		c.JSON(http.StatusForbidden, gin.H{"errors": "only the author can modify this recipe"})
		return nil, false
	}
	return recipe, true
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipe, ok := h.loadOwnRecipe(c)
	if !ok {
		return
	}

	var req updateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	in := service.RecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: toIngredientAmounts(req.Ingredients),
	}
	if req.Image != nil && strings.TrimSpace(*req.Image) != "" {
		image, ok := h.storeImage(c, *req.Image)
		if !ok {
			return
		}
		in.Image = &image
	}

	updated, err := h.recipes.Update(c.Request.Context(), recipe.ID, &in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	results, err := h.buildResponses(c, []models.Recipe{*updated})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, results[0])
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	recipe, ok := h.loadOwnRecipe(c)
	if !ok {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), recipe.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	viewer := middleware.UserID(c)
	recipe, err := h.lists.AddFavorite(c.Request.Context(), *viewer, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildShortRecipeResponse(recipe))
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	viewer := middleware.UserID(c)
	if err := h.lists.RemoveFavorite(c.Request.Context(), *viewer, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	viewer := middleware.UserID(c)
	recipe, err := h.lists.AddToCart(c.Request.Context(), *viewer, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildShortRecipeResponse(recipe))
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	viewer := middleware.UserID(c)
	if err := h.lists.RemoveFromCart(c.Request.Context(), *viewer, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	viewer := middleware.UserID(c)
	doc, err := h.shopping.Document(c.Request.Context(), *viewer)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=shopping.txt")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(doc))
}
