// Package routepath stores canonical HTTP paths for the site.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Projects     = "/projects"
	Blogs        = "/blogs"
	About        = "/about"
	Health       = "/healthz"
	StaticPrefix = "/static/"
	ScenePrefix  = "/scene/"

	// ContactAnchor is the in-page fragment of the contact form on Root.
	ContactAnchor = "#contact"
	// CategoryParam selects a project category on Projects.
	CategoryParam = "category"

	SceneModule  = ScenePrefix + "scene.wasm"
	SceneRuntime = ScenePrefix + "wasm_exec.js"
	SceneIcons   = ScenePrefix + "icons/"
	SceneBridge  = StaticPrefix + "scene.js"
	Stylesheet   = StaticPrefix + "site.css"
)

// ProjectsInCategory returns the projects route filtered to category. The
// unfiltered route is returned for blank values and "All".
func ProjectsInCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "All") {
		return Projects
	}
	return Projects + "?" + url.Values{CategoryParam: {category}}.Encode()
}

// Static returns the route of an embedded asset.
func Static(name string) string {
	return StaticPrefix + strings.TrimLeft(strings.TrimSpace(name), "/")
}
