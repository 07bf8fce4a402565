package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gazette-dev/gazette/internal/core/domain"
	"github.com/gazette-dev/gazette/internal/core/ports"
)

// ArticleHandler serves published and in-progress articles.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /api/articles.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}  domain.ArticleSummary
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ListArticles(c.Request().Context()))
}

// Get handles GET /api/article/:id. Malformed, missing and unreadable
// articles all answer 404.
//
// @Summary      Get an article
// @Tags         articles
// @Produce      json
// @Param        id   path      int  true  "Article id"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  msgResponse
// @Router       /api/article/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	article, ok := h.service.GetArticle(c.Request().Context(), id)
	if !ok {
		return domain.ErrArticleNotFound
	}
	return c.JSON(http.StatusOK, article)
}

// InProgress handles GET /api/articles/in-progress.
//
// @Summary      List the caller's in-progress articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}   domain.InProgressArticleSummary
// @Failure      401  {object}  msgResponse
// @Failure      403  {object}  msgResponse
// @Router       /api/articles/in-progress [get]
func (h *ArticleHandler) InProgress(c echo.Context) error {
	drafts, err := h.service.ListInProgress(c.Request().Context(), identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, drafts)
}
