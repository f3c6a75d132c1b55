package docs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API documentation endpoints.
func RegisterRoutes(router *gin.Engine) {
	docs := router.Group("/docs")
	{
		docs.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/docs/openapi.yaml")
		})
		docs.GET("/openapi.yaml", func(c *gin.Context) {
			c.Header("Content-Type", "application/yaml; charset=utf-8")
			c.String(http.StatusOK, openAPISpec)
		})
	}
}

// openAPISpec describes the public HTTP surface. Kept inline so the binary
// stays self-contained; update it alongside route changes in internal/app.
const openAPISpec = `openapi: 3.0.3
info:
  title: PetSure API
  description: >
    Pet insurance recommendation service. Scores the product pool against a
    pet profile's coverage preferences and returns ranked recommendation
    views with Korean match explanations.
  version: "1.0"
servers:
  - url: /
paths:
  /health:
    get:
      summary: Service health including database, cache and catalog status
      responses:
        "200":
          description: healthy or degraded
        "503":
          description: unhealthy
  /metrics:
    get:
      summary: Prometheus metrics
      responses:
        "200":
          description: metrics exposition
  /auth/token:
    post:
      summary: Exchange an API key for a JWT
      responses:
        "200":
          description: token issued
        "401":
          description: unknown API key
  /api/v1/profiles:
    get:
      summary: List the authenticated owner's pet profiles
      security:
        - bearerAuth: []
      responses:
        "200":
          description: profile list
  /api/v1/profiles/{profileId}/preferences:
    get:
      summary: Preference form state (saved snapshot, labels, breed list)
      security:
        - bearerAuth: []
      responses:
        "200":
          description: form state
        "404":
          description: profile not found
  /api/v1/profiles/{profileId}/recommendations:
    post:
      summary: Submit preferences and receive ranked recommendations
      description: >
        Persists the preference snapshot, scores every eligible product and
        returns the SURE, price and coverage-breadth rankings. Invalid or
        missing preference values coerce to the neutral default.
      security:
        - bearerAuth: []
      responses:
        "200":
          description: recommendation result
        "404":
          description: profile not found
  /api/v1/profiles/{profileId}/comparison:
    get:
      summary: Side-by-side view of every eligible product with SURE scores
      security:
        - bearerAuth: []
      responses:
        "200":
          description: comparison result
        "404":
          description: profile not found
  /api/v1/profiles/{profileId}/choices:
    post:
      summary: Record the insurance product the profile selected
      security:
        - bearerAuth: []
      responses:
        "201":
          description: choice recorded
        "404":
          description: profile not found
  /api/v1/products:
    get:
      summary: List insurance products with companies joined
      security:
        - bearerAuth: []
      responses:
        "200":
          description: product list
  /api/v1/products/{productId}:
    get:
      summary: Product detail with coverage resolved to readable text
      security:
        - bearerAuth: []
      responses:
        "200":
          description: product detail
        "404":
          description: product not found
components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
`
