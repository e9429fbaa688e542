// Package web serves the portfolio site: the landing page with its contact
// form, the project and article listings, the about page, and the optional
// WebAssembly background scene.
//
// Collaborator data flows through the portfolio loader, which degrades to
// empty lists, so every page renders even when GitHub or Medium is down.
package web
