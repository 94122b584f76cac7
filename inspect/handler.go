package inspect

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lyteflow/lyteflow/pipe"
	"github.com/lyteflow/lyteflow/version"
)

// GraphView is the JSON shape served to external renderers.
type GraphView struct {
	Name         string                 `json:"name"`
	Nodes        []pipe.NodeInfo        `json:"nodes"`
	DataEdges    []pipe.EdgeInfo        `json:"data_edges"`
	Requirements []pipe.RequirementInfo `json:"requirements"`
	Inlets       []pipe.Handle          `json:"inlets"`
	Outlets      []pipe.Handle          `json:"outlets"`
	Order        []pipe.Handle          `json:"order"`
}

// View builds a GraphView from a system.
func View(sys *pipe.System) GraphView {
	g := sys.Graph()
	return GraphView{
		Name:         sys.Name(),
		Nodes:        g.Nodes(),
		DataEdges:    g.DataEdges(),
		Requirements: g.RequirementEdges(),
		Inlets:       g.Inlets(),
		Outlets:      g.Outlets(),
		Order:        g.Order(),
	}
}

// Routes mounts the inspection endpoints on a gin router:
//
//	GET /graph   - the system's structure as JSON
//	GET /healthz - liveness probe
//	GET /version - build identity
func Routes(r gin.IRouter, sys *pipe.System) {
	r.GET("/graph", func(c *gin.Context) {
		c.JSON(http.StatusOK, View(sys))
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "system": sys.Name()})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})
}

// Handler returns a standalone http.Handler serving the inspection routes.
func Handler(sys *pipe.System) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	Routes(engine, sys)
	return engine
}
