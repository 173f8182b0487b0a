// Package views holds the minimal HTML layout shared by every page.
// Styling is intentionally out of scope; pages carry data and forms only.
package views

import (
	"fmt"
	"html"
)

// Escape HTML-escapes dynamic content before interpolation.
func Escape(s string) string {
	return html.EscapeString(s)
}

func navLink(href, label, name, active string) string {
	if name == active {
		return fmt.Sprintf(`<a href="%s" class="active">%s</a>`, href, Escape(label))
	}
	return fmt.Sprintf(`<a href="%s">%s</a>`, href, Escape(label))
}

// Shell wraps content in the public layout.
func Shell(title, active, body string) string {
	nav := navLink("/", "Accueil", "home", active) +
		navLink("/menu", "Menu", "menu", active) +
		navLink("/infos", "Infos", "infos", active) +
		navLink("/reservation", "Réserver", "reservation", active)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<nav>%s</nav>
<main>
<h1>%s</h1>
%s
</main>
</body>
</html>`, Escape(title), nav, Escape(title), body)
}

// AdminShell wraps content in the back-office layout, with the admin
// tabs and a logout button.
func AdminShell(title, active, body string) string {
	nav := navLink("/admin/reservations", "Réservations", "reservations", active) +
		navLink("/admin/menu", "Menu", "menu", active) +
		navLink("/admin/settings", "Paramètres", "settings", active)

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>%s</title></head>
<body>
<nav>%s</nav>
<form method="POST" action="/auth/logout"><button type="submit">Déconnexion</button></form>
<main>
<h1>%s</h1>
<p class="muted">Back-office restaurateur</p>
%s
</main>
</body>
</html>`, Escape(title), nav, Escape(title), body)
}
