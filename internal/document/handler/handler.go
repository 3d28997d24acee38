package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/padkit/helipad/internal/document"
	"github.com/padkit/helipad/internal/document/service"
	"github.com/padkit/helipad/pkg/logger"
	"github.com/padkit/helipad/pkg/middleware"
)

// RegisterDocumentRoutes mounts the XML API. Every route is a POST whose body
// is a <request> envelope; mw runs first and must include
// middleware.AuthMiddleware.
func RegisterDocumentRoutes(r *gin.Engine, svc service.Service, mw ...gin.HandlerFunc) {
	// match on the escaped path so a tag may contain "/"
	r.UseRawPath = true
	r.UnescapePathValues = true
	g := r.Group("/", mw...)

	g.POST("/", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), middleware.Account(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, documentList(list, fullDocument))
	})

	g.POST("/documents/titles", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), middleware.Account(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, documentList(list, titleOnly))
	})

	g.POST("/document/create", func(c *gin.Context) {
		id, err := svc.Create(c.Request.Context(), middleware.Account(c), patch(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, savedResponse(id))
	})

	g.POST("/document/search", func(c *gin.Context) {
		env := middleware.Envelope(c)
		if env == nil || env.Search == nil {
			middleware.AbortWithXMLError(c, http.StatusUnprocessableEntity, "no search term supplied")
			return
		}
		list, err := svc.Search(c.Request.Context(), middleware.Account(c), *env.Search)
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, documentList(list, fullDocument))
	})

	g.POST("/document/tag/:tag", func(c *gin.Context) {
		list, err := svc.ByTag(c.Request.Context(), middleware.Account(c), c.Param("tag"))
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, documentList(list, fullDocument))
	})

	g.POST("/document/:id/get", withID(func(c *gin.Context, id int) {
		d, err := svc.Get(c.Request.Context(), middleware.Account(c), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, fullDocument(d))
	}))

	g.POST("/document/:id/format/html", withID(func(c *gin.Context, id int) {
		html, err := svc.HTML(c.Request.Context(), middleware.Account(c), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, htmlXML{Body: html})
	}))

	g.POST("/document/:id/update", withID(func(c *gin.Context, id int) {
		if err := svc.Update(c.Request.Context(), middleware.Account(c), id, patch(c)); err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, savedResponse(id))
	}))

	g.POST("/document/:id/destroy", withID(func(c *gin.Context, id int) {
		if err := svc.Delete(c.Request.Context(), middleware.Account(c), id); err != nil {
			fail(c, err)
			return
		}
		c.XML(http.StatusOK, deletedResponse())
	}))
}

// withID parses the :id segment. Anything but a positive integer is a 404,
// the same as an id that does not exist.
func withID(h func(*gin.Context, int)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id < 1 {
			middleware.AbortWithXMLError(c, http.StatusNotFound, "document not found")
			return
		}
		h(c, id)
	}
}

func patch(c *gin.Context) document.Patch {
	if env := middleware.Envelope(c); env != nil {
		return env.Patch()
	}
	return document.Patch{}
}

func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		middleware.AbortWithXMLError(c, http.StatusNotFound, "document not found")
	case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrEmptyPatch):
		middleware.AbortWithXMLError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Errorf("padserver: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		middleware.AbortWithXMLError(c, http.StatusInternalServerError, "internal error")
	}
}
