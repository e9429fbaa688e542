//go:build js && wasm

// Package main runs the landing page background in the browser.
//
// The scene math lives in internal/scene; this host binds it to
// requestAnimationFrame, window resize events, and the canvas drawing bridge
// that /static/scene.js installs as window.portfolioScene.
package main

import (
	"log"

	"github.com/sinhaparth5/portfolio/internal/scene"
	"github.com/sinhaparth5/portfolio/internal/services/web/content"
)

func main() {
	log.SetPrefix("[SCENE] ")
	log.SetFlags(0)

	sceneIcons, err := loadIcons()
	if err != nil {
		log.Printf("load scene icons err=%v", err)
		return
	}
	icons := make([]scene.Icon, 0, len(sceneIcons))
	for _, icon := range sceneIcons {
		icons = append(icons, scene.Icon{Name: icon.Name, Size: icon.Size})
	}

	loop := scene.NewLoop(scene.LoopConfig{
		Scheduler: newAnimationFrames(),
		Resize:    windowResize{},
		Surface:   func() (scene.Surface, error) { return newCanvasSurface(icons) },
		Viewport:  windowViewport(),
		Icons:     icons,
	})
	loop.Init()
	loop.Start()
	if loop.Degraded() {
		return
	}

	<-onPageHide()
	loop.Dispose()
}

// loadIcons prefers the icons the server rendered into the page, so a site
// file override reaches the scene. The embedded copy is the fallback.
func loadIcons() ([]content.SceneIcon, error) {
	if raw := pageIconData(); raw != "" {
		icons, err := content.DecodeSceneIcons(raw)
		if err == nil {
			return icons, nil
		}
		log.Printf("page scene icons rejected err=%v", err)
	}
	site, err := content.Default()
	if err != nil {
		return nil, err
	}
	return site.SceneIcons, nil
}
