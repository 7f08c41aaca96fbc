package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storekit/storefront-api/internal/core/domain"
	"github.com/storekit/storefront-api/internal/core/ports"
)

// CollectionHandler handles HTTP requests for collection management.
// Mutating routes sit behind the ADMIN gate; listing is public.
type CollectionHandler struct {
	service ports.CollectionService
}

func NewCollectionHandler(service ports.CollectionService) *CollectionHandler {
	return &CollectionHandler{service: service}
}

type collectionRequest struct {
	Name string `json:"name" validate:"required"`
}

type collectionResponse struct {
	Message    string             `json:"message,omitempty"`
	Collection *domain.Collection `json:"collection,omitempty"`
}

type collectionListResponse struct {
	Collections []domain.Collection `json:"collections"`
}

// Create handles POST /api/v1/collections.
//
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      collectionRequest  true  "Collection details"
// @Success      201   {object}  collectionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/v1/collections [post]
func (h *CollectionHandler) Create(c echo.Context) error {
	var req collectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	collection, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, collectionResponse{
		Message:    "collection created successfully",
		Collection: collection,
	})
}

// Update handles PUT /api/v1/collections/:id.
//
// @Summary      Rename a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Collection ID"
// @Param        body  body      collectionRequest  true  "New collection details"
// @Success      200   {object}  collectionResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/collections/{id} [put]
func (h *CollectionHandler) Update(c echo.Context) error {
	var req collectionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	collection, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, collectionResponse{
		Message:    "collection updated successfully",
		Collection: collection,
	})
}

// Delete handles DELETE /api/v1/collections/:id.
//
// @Summary      Delete a collection
// @Tags         collections
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Collection ID"
// @Success      200  {object}  collectionResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/collections/{id} [delete]
func (h *CollectionHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, collectionResponse{Message: "collection deleted successfully"})
}

// List handles GET /api/v1/collections. No authentication required.
//
// @Summary      List all collections
// @Tags         collections
// @Produce      json
// @Success      200  {object}  collectionListResponse
// @Router       /api/v1/collections [get]
func (h *CollectionHandler) List(c echo.Context) error {
	collections, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if collections == nil {
		collections = []domain.Collection{}
	}

	return c.JSON(http.StatusOK, collectionListResponse{Collections: collections})
}
