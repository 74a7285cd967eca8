package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
)

const productNotFound = "the product does not exist"

func (h *Handler) listProducts(c *gin.Context) {
	var body dto.ListProductsDTO
	if !bindJSON(c, &body) {
		return
	}

	products, err := h.catalog.List(c.Request.Context(), body)
	if err != nil {
		h.fail(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) addProduct(c *gin.Context) {
	var body dto.ProductDTO
	if !bindJSON(c, &body) {
		return
	}

	p, err := h.catalog.Add(c.Request.Context(), actor(c), body)
	if err != nil {
		h.fail(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product added", "product_id": p.ID})
}

func (h *Handler) updateProduct(c *gin.Context) {
	var body dto.UpdateProductDTO
	if !bindJSON(c, &body) {
		return
	}

	if err := h.catalog.Update(c.Request.Context(), actor(c), body); err != nil {
		h.fail(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	var body dto.DeleteProductDTO
	if !bindJSON(c, &body) {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), actor(c), body); err != nil {
		h.fail(c, err, productNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	p, err := h.catalog.Get(c.Request.Context(), uint(id))
	if err != nil {
		h.fail(c, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) changeLog(c *gin.Context) {
	entries, err := h.catalog.ChangeLog(c.Request.Context())
	if err != nil {
		h.fail(c, err, "not found")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// actor is only called behind RequireToken, which always sets the identity.
func actor(c *gin.Context) model.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}
