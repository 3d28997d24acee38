package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for padserver.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>padserver · Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Every operation takes an XML <request> envelope carrying <authentication>.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "padserver", "version": "v0.1.0" },
  "components": {
    "requestBodies": {
      "Envelope": { "required": true, "content": { "application/xml": { "schema": { "type": "object", "xml": { "name": "request" }, "properties": {
        "authentication": { "type": "object", "properties": { "email": { "type": "string" }, "password": { "type": "string" } } },
        "document": { "type": "object", "properties": { "title": { "type": "string" }, "source": { "type": "string" }, "tags": { "type": "string" } } },
        "search": { "type": "string" }
      } } } } }
    }
  },
  "paths": {
    "/": { "post": { "summary": "List all documents", "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<documents>" }, "401": { "description": "invalid credentials" } } } },
    "/documents/titles": { "post": { "summary": "List document ids and titles", "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<documents>" } } } },
    "/document/create": { "post": { "summary": "Create a document", "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<response> with saved and id" }, "422": { "description": "missing title" } } } },
    "/document/search": { "post": { "summary": "Search titles and sources", "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<documents>" } } } },
    "/document/tag/{tag}": { "post": { "summary": "Documents carrying a tag", "parameters": [{ "name": "tag", "in": "path", "required": true, "schema": { "type": "string" } }], "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<documents>" } } } },
    "/document/{id}/get": { "post": { "summary": "Fetch one document", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "integer" } }], "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<document>" }, "404": { "description": "not found" } } } },
    "/document/{id}/format/html": { "post": { "summary": "Render a document as HTML", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "integer" } }], "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<html>" }, "404": { "description": "not found" } } } },
    "/document/{id}/update": { "post": { "summary": "Update a document", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "integer" } }], "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<response> with saved" }, "404": { "description": "not found" } } } },
    "/document/{id}/destroy": { "post": { "summary": "Delete a document", "parameters": [{ "name": "id", "in": "path", "required": true, "schema": { "type": "integer" } }], "requestBody": { "$ref": "#/components/requestBodies/Envelope" }, "responses": { "200": { "description": "<response> with deleted" }, "404": { "description": "not found" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
