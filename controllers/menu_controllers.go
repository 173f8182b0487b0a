package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restobackoffice/models"
	"restobackoffice/services"
	"restobackoffice/utils"
	"restobackoffice/views"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// listQuery reads the shared listing query parameters (filters + sort).
func listQuery(c *gin.Context) (models.DishFilters, models.DishSort) {
	filters := models.DishFilters{
		Search:     strings.TrimSpace(c.Query("search")),
		Vegetarian: c.Query("veg") == "1",
		Halal:      c.Query("halal") == "1",
		Spicy:      c.Query("spicy") == "1",
		Available:  c.Query("available") == "1",
	}
	return filters, models.ParseDishSort(c.Query("sort"), c.Query("dir"))
}

// queryString rebuilds the listing URL parameters for pager and sort
// links. page <= 0 omits the page parameter (export links).
func queryString(f models.DishFilters, sort models.DishSort, page int) string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Vegetarian {
		q.Set("veg", "1")
	}
	if f.Halal {
		q.Set("halal", "1")
	}
	if f.Spicy {
		q.Set("spicy", "1")
	}
	if f.Available {
		q.Set("available", "1")
	}
	q.Set("sort", sort.Column.String())
	q.Set("dir", sort.Dir())
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q.Encode()
}

func sortLink(f models.DishFilters, sort models.DishSort, column models.DishColumn, label string) string {
	next := models.DishSort{Column: column}
	arrow := ""
	if sort.Column == column {
		next.Desc = !sort.Desc
		if sort.Desc {
			arrow = " ▼"
		} else {
			arrow = " ▲"
		}
	}
	return fmt.Sprintf(`<a href="/admin/menu?%s">%s%s</a>`,
		queryString(f, next, 1), views.Escape(label), arrow)
}

func checkbox(name, label string, active bool) string {
	checked := ""
	if active {
		checked = " checked"
	}
	return fmt.Sprintf(`<label><input type="checkbox" name="%s" value="1"%s> %s</label>`, name, checked, label)
}

func (mc *MenuController) List(c *gin.Context) {
	filters, sort := listQuery(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	stats, err := models.CountDishStats(mc.DB, filters)
	if err != nil {
		utils.ErrorLogger.Printf("menu stats: %v", err)
		c.String(http.StatusInternalServerError, "Erreur statistiques menu")
		return
	}

	pageData, err := models.ListDishesPage(mc.DB, filters, sort, page)
	if err != nil {
		utils.ErrorLogger.Printf("menu listing: %v", err)
		c.String(http.StatusInternalServerError, "Erreur chargement menu")
		return
	}

	var rows strings.Builder
	for _, d := range pageData.Dishes {
		tags := ""
		if !d.IsAvailable {
			tags += "OFF "
		}
		if d.IsVegetarian {
			tags += "VEG "
		}
		if d.IsHalal {
			tags += "HALAL "
		}
		if d.IsSpicy {
			tags += "SPICY "
		}
		rows.WriteString(fmt.Sprintf(`<tr>
<td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s €</td><td>%s</td>
<td><a href="/admin/menu/%d/edit">Modifier</a>
<form method="POST" action="/admin/menu/%d/delete"><button type="submit">Supprimer</button></form></td>
</tr>
`,
			d.ID, d.Position, views.Escape(d.Name), views.Escape(d.Description),
			views.Escape(d.Category), utils.FormatPriceEUR(d.PriceCents),
			strings.TrimSpace(tags), d.ID, d.ID))
	}
	if rows.Len() == 0 {
		rows.WriteString(`<tr><td colspan="8">Aucun plat trouvé</td></tr>`)
	}

	prev := pageData.Page - 1
	if prev < 1 {
		prev = 1
	}
	next := pageData.Page + 1
	if next > pageData.TotalPages {
		next = pageData.TotalPages
	}
	pager := fmt.Sprintf(`<p>Total : <strong>%d</strong> — Page <strong>%d</strong> / <strong>%d</strong>
<a href="/admin/menu?%s">◀</a> <a href="/admin/menu?%s">▶</a></p>`,
		pageData.Total, pageData.Page, pageData.TotalPages,
		queryString(filters, sort, prev), queryString(filters, sort, next))

	body := fmt.Sprintf(`<p>
<a href="/admin/menu/new">+ Ajouter un plat</a>
<a href="/admin/menu/import">Importer CSV</a>
<a href="/admin/menu/export?%s">Exporter CSV</a>
<a href="/admin/menu/export-xlsx?%s">Exporter Excel</a>
</p>
<form method="GET" action="/admin/menu">
<input type="hidden" name="page" value="1">
<input type="hidden" name="sort" value="%s">
<input type="hidden" name="dir" value="%s">
<input name="search" value="%s" placeholder="Rechercher (nom, description, catégorie)">
%s %s %s %s
<button type="submit">Filtrer</button> <a href="/admin/menu">Réinitialiser</a>
</form>
%s
<table>
<thead><tr><th>%s</th><th>%s</th><th>%s</th><th>Description</th><th>%s</th><th>%s</th><th>Tags</th><th>Actions</th></tr></thead>
<tbody>%s</tbody>
</table>
%s`,
		queryString(filters, sort, 0), queryString(filters, sort, 0),
		sort.Column.String(), sort.Dir(),
		views.Escape(filters.Search),
		checkbox("available", fmt.Sprintf("Disponible (%d)", stats.Available), filters.Available),
		checkbox("veg", fmt.Sprintf("Végétarien (%d)", stats.Vegetarian), filters.Vegetarian),
		checkbox("halal", fmt.Sprintf("Halal (%d)", stats.Halal), filters.Halal),
		checkbox("spicy", fmt.Sprintf("Épicé (%d)", stats.Spicy), filters.Spicy),
		pager,
		sortLink(filters, sort, models.SortByID, "ID"),
		sortLink(filters, sort, models.SortByPosition, "Pos"),
		sortLink(filters, sort, models.SortByName, "Nom"),
		sortLink(filters, sort, models.SortByCategory, "Cat."),
		sortLink(filters, sort, models.SortByPrice, "Prix"),
		rows.String(), pager)

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(views.AdminShell("Back-office — Menu", "menu", body)))
}

func dishFormPage(title, action, submit string, dish models.Dish, errs []string) string {
	banner := ""
	if len(errs) > 0 {
		banner = fmt.Sprintf(`<p class="error">Merci de vérifier les champs : %s</p>`,
			views.Escape(strings.Join(errs, ", ")))
	}

	var options strings.Builder
	for _, category := range models.AllowedCategories {
		selected := ""
		if category == dish.Category {
			selected = " selected"
		}
		options.WriteString(fmt.Sprintf(`<option value="%s"%s>%s</option>`, category, selected, category))
	}

	ck := func(v bool) string {
		if v {
			return " checked"
		}
		return ""
	}

	body := fmt.Sprintf(`%s
<form method="POST" action="%s">
<label>Nom <input name="name" required maxlength="120" value="%s"></label>
<label>Prix (centimes) <input name="price_cents" type="number" min="0" required value="%d"></label>
<label>Description <textarea name="description" rows="4">%s</textarea></label>
<label>Catégorie <select name="category" required>%s</select></label>
<label>Position (ordre) <input name="position" type="number" value="%d"></label>
<label><input type="checkbox" name="is_available" value="1"%s> Disponible</label>
<label><input type="checkbox" name="is_vegetarian" value="1"%s> Végétarien</label>
<label><input type="checkbox" name="is_halal" value="1"%s> Halal</label>
<label><input type="checkbox" name="is_spicy" value="1"%s> Épicé</label>
<button type="submit">%s</button> <a href="/admin/menu">Retour</a>
</form>`,
		banner, action, views.Escape(dish.Name), dish.PriceCents,
		views.Escape(dish.Description), options.String(), dish.Position,
		ck(dish.IsAvailable), ck(dish.IsVegetarian), ck(dish.IsHalal), ck(dish.IsSpicy),
		views.Escape(submit))

	return views.AdminShell(title, "menu", body)
}

func (mc *MenuController) NewPage(c *gin.Context) {
	dish := models.Dish{Category: models.CategoryPlat, IsAvailable: true}
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(dishFormPage("Ajouter un plat", "/admin/menu/new", "Créer", dish, nil)))
}

func (mc *MenuController) Create(c *gin.Context) {
	dish, errs := models.ParseDishForm(c.PostForm)
	if len(errs) > 0 {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(dishFormPage("Ajouter un plat", "/admin/menu/new", "Créer", dish, errs)))
		return
	}

	if err := mc.DB.Create(&dish).Error; err != nil {
		utils.ErrorLogger.Printf("create dish: %v", err)
		c.String(http.StatusInternalServerError, "Erreur création plat")
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu")
}

func (mc *MenuController) loadDish(c *gin.Context) (models.Dish, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Plat introuvable")
		return models.Dish{}, false
	}

	var dish models.Dish
	if err := mc.DB.First(&dish, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Plat introuvable")
		} else {
			utils.ErrorLogger.Printf("load dish: %v", err)
			c.String(http.StatusInternalServerError, "Erreur chargement plat")
		}
		return models.Dish{}, false
	}
	return dish, true
}

func (mc *MenuController) EditPage(c *gin.Context) {
	dish, ok := mc.loadDish(c)
	if !ok {
		return
	}

	action := fmt.Sprintf("/admin/menu/%d/edit", dish.ID)
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(dishFormPage("Modifier un plat", action, "Enregistrer", dish, nil)))
}

func (mc *MenuController) Update(c *gin.Context) {
	dish, ok := mc.loadDish(c)
	if !ok {
		return
	}

	updated, errs := models.ParseDishForm(c.PostForm)
	if len(errs) > 0 {
		action := fmt.Sprintf("/admin/menu/%d/edit", dish.ID)
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(dishFormPage("Modifier un plat", action, "Enregistrer", updated, errs)))
		return
	}

	updated.ID = dish.ID
	updated.CreatedAt = dish.CreatedAt
	if err := mc.DB.Save(&updated).Error; err != nil {
		utils.ErrorLogger.Printf("update dish: %v", err)
		c.String(http.StatusInternalServerError, "Erreur mise à jour plat")
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu")
}

func (mc *MenuController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.String(http.StatusNotFound, "Plat introuvable")
		return
	}

	if err := mc.DB.Delete(&models.Dish{}, uint(id)).Error; err != nil {
		utils.ErrorLogger.Printf("delete dish: %v", err)
		c.String(http.StatusInternalServerError, "Erreur suppression plat")
		return
	}

	c.Redirect(http.StatusFound, "/admin/menu")
}

func (mc *MenuController) ExportCSV(c *gin.Context) {
	filters, sort := listQuery(c)

	dishes, err := models.ListDishes(mc.DB, filters, sort)
	if err != nil {
		utils.ErrorLogger.Printf("export csv: %v", err)
		c.String(http.StatusInternalServerError, "Erreur export CSV")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename("csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", services.DishesCSV(dishes))
}

func (mc *MenuController) ExportXLSX(c *gin.Context) {
	filters, sort := listQuery(c)

	dishes, err := models.ListDishes(mc.DB, filters, sort)
	if err != nil {
		utils.ErrorLogger.Printf("export xlsx: %v", err)
		c.String(http.StatusInternalServerError, "Erreur export Excel")
		return
	}

	file, err := services.DishesXLSX(dishes)
	if err != nil {
		utils.ErrorLogger.Printf("export xlsx: %v", err)
		c.String(http.StatusInternalServerError, "Erreur export Excel")
		return
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		utils.ErrorLogger.Printf("export xlsx: %v", err)
		c.String(http.StatusInternalServerError, "Erreur export Excel")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename("xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
