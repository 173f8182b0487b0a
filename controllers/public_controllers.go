package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/utils"
	"restobackoffice/views"
)

type PublicController struct {
	DB *gorm.DB
}

func NewPublicController(db *gorm.DB) *PublicController {
	return &PublicController{DB: db}
}

func (pc *PublicController) Home(c *gin.Context) {
	settings, err := models.GetSettings(pc.DB)
	if err != nil {
		utils.ErrorLogger.Printf("home: %v", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	body := fmt.Sprintf(`<p>Bienvenue chez <strong>%s</strong>. Découvrez notre menu et réservez une table en ligne.</p>
<p><a href="/menu">Voir le menu</a> <a href="/reservation">Réserver</a></p>`,
		views.Escape(settings.RestaurantName))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Accueil", "home", body)))
}

func (pc *PublicController) Menu(c *gin.Context) {
	dishes, err := models.ListPublicDishes(pc.DB)
	if err != nil {
		utils.ErrorLogger.Printf("public menu: %v", err)
		c.String(http.StatusInternalServerError, "Erreur chargement menu")
		return
	}

	var rows strings.Builder
	for _, d := range dishes {
		rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s</td><td>%s</td><td>%s €</td></tr>\n",
			views.Escape(d.Name), views.Escape(d.Description), views.Escape(d.Category),
			utils.FormatPriceEUR(d.PriceCents)))
	}
	if rows.Len() == 0 {
		rows.WriteString(`<tr><td colspan="4">Menu en cours de préparation</td></tr>`)
	}

	body := fmt.Sprintf(`<table>
<thead><tr><th>Nom</th><th>Description</th><th>Catégorie</th><th>Prix</th></tr></thead>
<tbody>%s</tbody>
</table>`, rows.String())

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Menu", "menu", body)))
}

func (pc *PublicController) Infos(c *gin.Context) {
	settings, err := models.GetSettings(pc.DB)
	if err != nil {
		utils.ErrorLogger.Printf("infos: %v", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	body := fmt.Sprintf(`<p><strong>%s</strong></p>
<p>Adresse : %s</p>
<p>Téléphone : %s</p>
<p>Email : %s</p>
<p>Horaires :<br>%s</p>`,
		views.Escape(settings.RestaurantName),
		views.Escape(settings.Address),
		views.Escape(settings.Phone),
		views.Escape(settings.Email),
		strings.ReplaceAll(views.Escape(settings.OpeningHours), "\n", "<br>"))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Infos", "infos", body)))
}

func (pc *PublicController) ReservationPage(c *gin.Context) {
	settings, err := models.GetSettings(pc.DB)
	if err != nil {
		utils.ErrorLogger.Printf("reservation page: %v", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}
	if !settings.ReservationEnabled {
		body := `<p>Les réservations en ligne sont désactivées pour le moment. Contactez-nous par téléphone.</p>`
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Réserver une table", "reservation", body)))
		return
	}

	errorBanner := ""
	if reason := c.Query("error"); reason != "" {
		errorBanner = fmt.Sprintf(`<p class="error">Merci de vérifier les champs : %s</p>`, views.Escape(reason))
	}

	body := errorBanner + `
<form method="POST" action="/reservation">
<label>Nom complet <input name="fullname" required maxlength="120"></label>
<label>Téléphone <input name="phone" required maxlength="30"></label>
<label>Email (optionnel) <input name="email" type="email" maxlength="191"></label>
<label>Nombre de personnes <input name="people" type="number" min="1" max="20" required value="2"></label>
<label>Date <input name="reservation_date" type="date" required></label>
<label>Heure <input name="reservation_time" type="time" required></label>
<label>Message (optionnel) <textarea name="message" rows="4"></textarea></label>
<button type="submit">Envoyer la demande</button>
</form>
<p class="muted">Votre demande sera traitée par le restaurant. Confirmation par téléphone ou email.</p>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Réserver une table", "reservation", body)))
}

func (pc *PublicController) CreateReservation(c *gin.Context) {
	settings, err := models.GetSettings(pc.DB)
	if err == nil && !settings.ReservationEnabled {
		c.Redirect(http.StatusFound, "/reservation")
		return
	}

	reservation, errs := models.ParseReservationForm(c.PostForm)
	if len(errs) > 0 {
		c.Redirect(http.StatusFound, "/reservation?error="+url.QueryEscape(strings.Join(errs, ", ")))
		return
	}

	if err := pc.DB.Create(&reservation).Error; err != nil {
		utils.ErrorLogger.Printf("create reservation: %v", err)
		c.String(http.StatusInternalServerError, "Erreur lors de l’enregistrement.")
		return
	}

	body := fmt.Sprintf(`<p>Merci <strong>%s</strong>, votre demande a bien été envoyée.</p>
<ul>
<li>Date : %s</li>
<li>Heure : %s</li>
<li>Personnes : %d</li>
<li>Téléphone : %s</li>
</ul>
<p><a href="/">Retour accueil</a> <a href="/reservation">Nouvelle réservation</a></p>`,
		views.Escape(reservation.Fullname),
		views.Escape(reservation.ReservationDate),
		views.Escape(reservation.ReservationTime),
		reservation.People,
		views.Escape(reservation.Phone))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(views.Shell("Demande envoyée", "reservation", body)))
}
