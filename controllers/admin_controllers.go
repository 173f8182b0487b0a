package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/utils"
	"restobackoffice/views"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

func statusOption(value, current string) string {
	selected := ""
	if value == current {
		selected = " selected"
	}
	return fmt.Sprintf(`<option value="%s"%s>%s</option>`, value, selected, value)
}

func (ac *AdminController) ReservationsPage(c *gin.Context) {
	reservations, err := models.ListReservationsAdmin(ac.DB)
	if err != nil {
		utils.ErrorLogger.Printf("list reservations: %v", err)
		c.String(http.StatusInternalServerError, "Erreur chargement réservations")
		return
	}

	var rows strings.Builder
	for _, r := range reservations {
		contact := views.Escape(r.Phone)
		if r.Email != "" {
			contact += " — " + views.Escape(r.Email)
		}
		rows.WriteString(fmt.Sprintf(`<tr>
<td>%s</td><td>%s</td><td><strong>%s</strong><br>%s</td><td>%d</td><td>%s</td><td>%s</td>
<td><form method="POST" action="/admin/reservations/%d/status">
<select name="status">%s%s%s</select>
<button type="submit">OK</button>
</form></td>
</tr>
`,
			views.Escape(r.ReservationDate), views.Escape(r.ReservationTime),
			views.Escape(r.Fullname), contact, r.People, views.Escape(r.Message),
			views.Escape(r.Status), r.ID,
			statusOption(models.StatusPending, r.Status),
			statusOption(models.StatusConfirmed, r.Status),
			statusOption(models.StatusCancelled, r.Status)))
	}
	if rows.Len() == 0 {
		rows.WriteString(`<tr><td colspan="7">Aucune réservation</td></tr>`)
	}

	body := fmt.Sprintf(`<p class="muted">Liste des demandes de réservation (lecture + changement de statut).</p>
<table>
<thead><tr><th>Date</th><th>Heure</th><th>Client</th><th>Pers.</th><th>Message</th><th>Status</th><th>Action</th></tr></thead>
<tbody>%s</tbody>
</table>`, rows.String())

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(views.AdminShell("Back-office — Réservations", "reservations", body)))
}

func (ac *AdminController) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Page introuvable")
		return
	}

	status := c.PostForm("status")
	if err := models.UpdateReservationStatus(ac.DB, uint(id), status); err != nil {
		if errors.Is(err, models.ErrInvalidStatus) {
			c.String(http.StatusBadRequest, "Statut invalide")
			return
		}
		utils.ErrorLogger.Printf("update reservation status: %v", err)
		c.String(http.StatusInternalServerError, "Erreur mise à jour statut")
		return
	}

	c.Redirect(http.StatusFound, "/admin/reservations")
}

func (ac *AdminController) SettingsPage(c *gin.Context) {
	settings, err := models.GetSettings(ac.DB)
	if err != nil {
		utils.ErrorLogger.Printf("load settings: %v", err)
		c.String(http.StatusInternalServerError, "Erreur chargement paramètres")
		return
	}

	flashBanner := ""
	if session := currentSession(c); session != nil {
		if flash := session.TakeFlash(ac.DB); flash != "" {
			flashBanner = fmt.Sprintf(`<p class="flash">%s</p>`, views.Escape(flash))
		}
	}

	checked := ""
	if settings.ReservationEnabled {
		checked = " checked"
	}

	body := fmt.Sprintf(`<p class="muted">Paramètres généraux du restaurant.</p>
%s
<form method="POST" action="/admin/settings">
<label>Nom du restaurant <input name="restaurant_name" maxlength="120" value="%s" required></label>
<label>Capacité (places) <input name="capacity" type="number" min="1" value="%d" required></label>
<label>Téléphone <input name="phone" maxlength="30" value="%s"></label>
<label>Email <input name="email" type="email" maxlength="120" value="%s"></label>
<label>Adresse <input name="address" maxlength="255" value="%s"></label>
<label>Horaires (texte libre) <textarea name="opening_hours">%s</textarea></label>
<label><input type="checkbox" name="reservation_enabled" value="1"%s> Activer les réservations en ligne</label>
<button type="submit">Enregistrer</button>
</form>`,
		flashBanner,
		views.Escape(settings.RestaurantName),
		settings.Capacity,
		views.Escape(settings.Phone),
		views.Escape(settings.Email),
		views.Escape(settings.Address),
		views.Escape(settings.OpeningHours),
		checked)

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(views.AdminShell("Back-office — Paramètres", "settings", body)))
}

func (ac *AdminController) SettingsSave(c *gin.Context) {
	session := currentSession(c)

	settings, errs := models.ParseSettingsForm(c.PostForm)
	if len(errs) > 0 {
		if session != nil {
			session.SetFlash(ac.DB, errs[0])
		}
		c.Redirect(http.StatusFound, "/admin/settings")
		return
	}

	if err := models.SaveSettings(ac.DB, settings); err != nil {
		utils.ErrorLogger.Printf("save settings: %v", err)
		if session != nil {
			session.SetFlash(ac.DB, "Erreur BDD : paramètres non enregistrés.")
		}
		c.Redirect(http.StatusFound, "/admin/settings")
		return
	}

	if session != nil {
		session.SetFlash(ac.DB, "Paramètres enregistrés.")
	}
	c.Redirect(http.StatusFound, "/admin/settings")
}
