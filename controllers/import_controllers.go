package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restobackoffice/services"
	"restobackoffice/utils"
	"restobackoffice/views"
)

type ImportController struct {
	DB *gorm.DB
}

func NewImportController(db *gorm.DB) *ImportController {
	return &ImportController{DB: db}
}

func (ic *ImportController) ImportPage(c *gin.Context) {
	body := `<p class="muted">Format : séparateur <strong>;</strong> et en-têtes :
<code>name;description;category;price_eur;is_available;is_vegetarian;is_halal;is_spicy;position</code></p>
<form method="POST" action="/admin/menu/import/preview" enctype="multipart/form-data">
<input type="file" name="file" accept=".csv,text/csv" required>
<button type="submit">Générer l’aperçu</button> <a href="/admin/menu">Retour</a>
</form>`

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(views.AdminShell("Importer CSV", "menu", body)))
}

// UploadPreview parses the uploaded file and stages the result in the
// session, overwriting any pending preview.
func (ic *ImportController) UploadPreview(c *gin.Context) {
	session := currentSession(c)

	header, err := c.FormFile("file")
	if err != nil {
		c.Redirect(http.StatusFound, "/admin/menu/import")
		return
	}

	if header.Size > services.MaxUploadSize {
		body := `<p class="muted">Fichier refusé : taille maximale 2 Mo.</p>
<p><a href="/admin/menu/import">Retour</a></p>`
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(views.AdminShell("Import CSV", "menu", body)))
		return
	}

	file, err := header.Open()
	if err != nil {
		utils.ErrorLogger.Printf("open upload: %v", err)
		c.String(http.StatusInternalServerError, "Impossible de lire le fichier CSV.")
		return
	}
	defer file.Close()

	preview, err := services.ParseDishCSV(file)
	if err != nil {
		session.ClearPreview(ic.DB)
		body := fmt.Sprintf(`<h2>CSV invalide</h2>
<p class="muted">%s</p>
<p><a href="/admin/menu/import">Retour</a></p>`, views.Escape(err.Error()))
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(views.AdminShell("Import CSV", "menu", body)))
		return
	}

	if err := session.StorePreview(ic.DB, preview); err != nil {
		utils.ErrorLogger.Printf("store preview: %v", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu/import/preview")
}

func (ic *ImportController) PreviewPage(c *gin.Context) {
	session := currentSession(c)

	preview, pending := session.ImportState()
	if !pending {
		body := `<h2>Aucun aperçu en cours</h2>
<p class="muted">Importe un fichier CSV pour afficher un aperçu avant validation.</p>
<p><a href="/admin/menu/import">Retour import</a></p>`
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte(views.AdminShell("Aperçu import CSV", "menu", body)))
		return
	}

	errorCount := len(preview.Errors)

	var errorsBlock strings.Builder
	if errorCount > 0 {
		errorsBlock.WriteString("<ul>")
		shown := preview.Errors
		if len(shown) > 20 {
			shown = shown[:20]
		}
		for _, e := range shown {
			errorsBlock.WriteString("<li>" + views.Escape(e) + "</li>")
		}
		errorsBlock.WriteString("</ul><p class=\"muted\">Corrige le CSV puis relance l’import.</p>")
	}

	var rows strings.Builder
	oui := func(v bool) string {
		if v {
			return "Oui"
		}
		return "Non"
	}
	for _, row := range preview.Rows {
		d := row.Dish
		rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s €</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			views.Escape(d.Name), views.Escape(d.Description), views.Escape(d.Category),
			utils.FormatPriceEUR(d.PriceCents),
			oui(d.IsAvailable), oui(d.IsVegetarian), oui(d.IsHalal), oui(d.IsSpicy),
			views.Escape(row.Error)))
	}
	if rows.Len() == 0 {
		rows.WriteString(`<tr><td colspan="9">Aucune ligne</td></tr>`)
	}

	actions := `<p><a href="/admin/menu/import">Retour</a></p>`
	if errorCount == 0 {
		actions = fmt.Sprintf(`<form method="POST" action="/admin/menu/import/confirm">
<button type="submit">Valider l’import (%d plats)</button>
</form>
<form method="POST" action="/admin/menu/import/cancel">
<button type="submit">Annuler</button>
</form>
<p><a href="/admin/menu/import">Retour</a></p>`, preview.Valid)
	}

	body := fmt.Sprintf(`<p class="muted">Total lignes : <strong>%d</strong> —
Valides : <strong>%d</strong> — Erreurs : <strong>%d</strong></p>
%s
%s
<table>
<thead><tr><th>Nom</th><th>Description</th><th>Catégorie</th><th>Prix</th><th>Dispo</th><th>Veg</th><th>Halal</th><th>Spicy</th><th>Erreur</th></tr></thead>
<tbody>%s</tbody>
</table>
<p class="muted">Aperçu limité à 200 lignes pour la lisibilité.</p>`,
		preview.Total, preview.Valid, errorCount,
		errorsBlock.String(), actions, rows.String())

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(views.AdminShell("Aperçu import CSV", "menu", body)))
}

func (ic *ImportController) Confirm(c *gin.Context) {
	session := currentSession(c)

	preview, pending := session.ImportState()
	if !pending {
		c.Redirect(http.StatusFound, "/admin/menu/import")
		return
	}

	count, err := services.ConfirmImport(ic.DB, preview)
	if err != nil {
		if errors.Is(err, services.ErrNothingToImport) {
			body := `<h2>Aucune ligne valide à importer</h2>
<p><a href="/admin/menu/import">Retour</a></p>`
			c.Data(http.StatusOK, "text/html; charset=utf-8",
				[]byte(views.AdminShell("Import CSV", "menu", body)))
			return
		}

		// transaction rolled back, the staged preview is still usable
		utils.ErrorLogger.Printf("confirm import: %v", err)
		body := `<h2>Erreur insertion</h2>
<p class="muted">Aucune ligne n’a été importée.</p>
<p><a href="/admin/menu/import/preview">Retour aperçu</a></p>`
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
			[]byte(views.AdminShell("Import CSV", "menu", body)))
		return
	}

	if err := session.ClearPreview(ic.DB); err != nil {
		utils.ErrorLogger.Printf("clear preview: %v", err)
	}
	utils.InfoLogger.Printf("import confirmed: %d dishes", count)
	c.Redirect(http.StatusFound, "/admin/menu")
}

func (ic *ImportController) Cancel(c *gin.Context) {
	session := currentSession(c)
	if err := session.ClearPreview(ic.DB); err != nil {
		utils.ErrorLogger.Printf("clear preview: %v", err)
	}
	c.Redirect(http.StatusFound, "/admin/menu/import")
}
