package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Navigation
	message.SetString(lang, "nav.home", "Home")
	message.SetString(lang, "nav.projects", "Projects")
	message.SetString(lang, "nav.blogs", "Blogs")
	message.SetString(lang, "nav.about", "About")
	message.SetString(lang, "nav.contact", "Contact")

	// Page titles
	message.SetString(lang, "title.projects", "Projects | %s")
	message.SetString(lang, "title.blogs", "Blogs | %s")
	message.SetString(lang, "title.about", "About | %s")
	message.SetString(lang, "title.error", "%d | %s")

	// Home sections
	message.SetString(lang, "skills.heading", "Skills")
	message.SetString(lang, "cta.projects", "See my work")
	message.SetString(lang, "cta.contact", "Get in touch")
	message.SetString(lang, "about.heading", "About me")

	// Projects
	message.SetString(lang, "projects.heading", "Latest projects")
	message.SetString(lang, "projects.all_heading", "All projects")
	message.SetString(lang, "projects.empty", "No projects to show right now.")
	message.SetString(lang, "projects.view_all", "View all projects")
	message.SetString(lang, "projects.stars", "%d stars")
	message.SetString(lang, "projects.updated", "Updated %s")
	message.SetString(lang, "projects.homepage", "Live site")
	message.SetString(lang, "projects.source", "Source")

	// Articles
	message.SetString(lang, "articles.heading", "Latest articles")
	message.SetString(lang, "articles.all_heading", "All articles")
	message.SetString(lang, "articles.empty", "No articles to show right now.")
	message.SetString(lang, "articles.view_all", "Read all articles")
	message.SetString(lang, "articles.read", "Read on Medium")

	// Contact form
	message.SetString(lang, "contact.heading", "Get in touch")
	message.SetString(lang, "contact.name", "Name")
	message.SetString(lang, "contact.email", "Email")
	message.SetString(lang, "contact.subject", "Subject")
	message.SetString(lang, "contact.message", "Message")
	message.SetString(lang, "contact.send", "Send message")
	message.SetString(lang, "contact.sent", "Message sent! I'll get back to you soon.")

	// Errors
	message.SetString(lang, "error.csrf_invalid", "Invalid security token")
	message.SetString(lang, "error.email_failed", "Failed to send email")
	message.SetString(lang, "error.contact_field_required", "Please fill in every field.")
	message.SetString(lang, "error.contact_email_invalid", "Please enter a valid email address.")
	message.SetString(lang, "error.contact_field_too_long", "One of the fields is too long.")
	message.SetString(lang, "error.not_found", "This page does not exist.")
	message.SetString(lang, "error.internal", "Something went wrong. Please try again.")
}
