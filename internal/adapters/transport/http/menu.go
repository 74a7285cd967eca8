package http

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"price": func(p float64) string { return strconv.FormatFloat(p, 'f', 2, 64) },
	}).ParseFS(templatesFS, "templates/*.html"))
}

type menuSection struct {
	Category string
	Items    []model.MenuItem
}

// sections groups consecutive items by category; items arrive ordered by
// category from the store.
func sections(items []model.MenuItem) []menuSection {
	var out []menuSection
	for _, it := range items {
		if n := len(out); n > 0 && out[n-1].Category == it.Category {
			out[n-1].Items = append(out[n-1].Items, it)
			continue
		}
		out = append(out, menuSection{Category: it.Category, Items: []model.MenuItem{it}})
	}
	return out
}

func (h *Handler) index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/menu")
}

func (h *Handler) menu(c *gin.Context) {
	items, err := h.catalog.Menu(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.HTML(http.StatusOK, "menu.html", gin.H{"Sections": sections(items)})
}
