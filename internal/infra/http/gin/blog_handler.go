package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	blogsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/blog"
	blogagentsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/blogagent"
	"github.com/thienvyma/tagiangecolodge/internal/domain/blog"
)

type BlogHandler struct {
	Service  *blogsvc.Service
	AgentSvc *blogagentsvc.Service
	Logger   *slog.Logger
}

type seoRequest struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	FocusKeyword    string `json:"focus_keyword"`
}

type postRequest struct {
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content"`
	CoverImage string     `json:"cover_image"`
	Category   string     `json:"category"`
	Tags       []string   `json:"tags"`
	Author     string     `json:"author"`
	Featured   bool       `json:"featured"`
	SEO        seoRequest `json:"seo"`
}

type postResponse struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	CoverImage  string     `json:"cover_image,omitempty"`
	Category    string     `json:"category,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Author      string     `json:"author,omitempty"`
	PublishedAt string     `json:"published_at"`
	ReadTime    int        `json:"read_time"`
	Featured    bool       `json:"featured"`
	SEO         seoRequest `json:"seo"`
}

func newPostResponse(p *blog.Post, withContent bool) postResponse {
	resp := postResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Excerpt:     p.Excerpt,
		CoverImage:  p.CoverImage,
		Category:    p.Category,
		Tags:        p.Tags,
		Author:      p.Author,
		PublishedAt: p.PublishedAt.Format(time.RFC3339),
		ReadTime:    p.ReadTime,
		Featured:    p.Featured,
		SEO: seoRequest{
			MetaTitle:       p.SEO.MetaTitle,
			MetaDescription: p.SEO.MetaDescription,
			FocusKeyword:    p.SEO.FocusKeyword,
		},
	}
	if withContent {
		resp.Content = p.Content
	}
	return resp
}

func (req postRequest) toAggregate(id string) *blog.Post {
	return &blog.Post{
		ID:         id,
		Slug:       req.Slug,
		Title:      req.Title,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Category:   req.Category,
		Tags:       req.Tags,
		Author:     req.Author,
		Featured:   req.Featured,
		SEO: blog.SEO{
			MetaTitle:       req.SEO.MetaTitle,
			MetaDescription: req.SEO.MetaDescription,
			FocusKeyword:    req.SEO.FocusKeyword,
		},
	}
}

// List returns post summaries without body content.
func (h BlogHandler) List(c *gin.Context) {
	posts, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p, false))
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

func (h BlogHandler) BySlug(c *gin.Context) {
	post, err := h.Service.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post, true))
}

func (h BlogHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	post, err := h.Service.Create(c.Request.Context(), req.toAggregate(""))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(post, true))
}

func (h BlogHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	post := req.toAggregate(c.Param("id"))
	if err := h.Service.Update(c.Request.Context(), post); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPostResponse(post, true))
}

func (h BlogHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type agentRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
	Extra    string `json:"extra"`
}

// Agent generates a draft without persisting it.
func (h BlogHandler) Agent(c *gin.Context) {
	if h.AgentSvc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "blog agent is not configured"})
		return
	}
	var req agentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	draft, err := h.AgentSvc.Generate(c.Request.Context(), blogagentsvc.GenerateParams{
		Topic:    req.Topic,
		Category: req.Category,
		Extra:    req.Extra,
	})
	if err != nil {
		h.respondAgentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

type agentSaveRequest struct {
	postRequest
}

// AgentSave persists a reviewed draft as a published post.
func (h BlogHandler) AgentSave(c *gin.Context) {
	var req agentSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	post := req.postRequest.toAggregate("")
	if post.Author == "" {
		post.Author = "AI Agent"
	}
	created, err := h.Service.Create(c.Request.Context(), post)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newPostResponse(created, true))
}

func (h BlogHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blog.ErrSlugRequired), errors.Is(err, blog.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, blog.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, blog.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("blog operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h BlogHandler) respondAgentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blogagentsvc.ErrTopicRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, blogagentsvc.ErrEmptyReply), errors.Is(err, blogagentsvc.ErrBadReply):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("blog agent failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ BlogHTTP = (*BlogHandler)(nil)
