package repository

import (
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// Таблицы схемы (migrations/001_init.sql).
const (
	TableLanguages             = "languages"
	TableCategories            = "categories"
	TableSubCategories         = "sub_categories"
	TableSubSubCategories      = "sub_sub_categories"
	TablePackages              = "packages"
	TableItineraries           = "itineraries"
	TableEssentialInformation  = "essential_information"
	TableFaqs                  = "faqs"
	TableFaqPackages           = "faq_packages"
	TableIncludeExcludes       = "include_excludes"
	TableIncludeExcludePackage = "include_exclude_packages"
	TablePackageImages         = "package_images"
	TablePackageGalleries      = "package_galleries"
	TableReviews               = "reviews"
	TablePackageBookings       = "package_bookings"
	TableUsers                 = "users"
	TablePasswordResetTokens   = "password_reset_tokens"
	TableHomePageSliders       = "home_page_sliders"
	TableHomePackages          = "home_packages"
	TableAbouts                = "abouts"
	TableContacts              = "contacts"
	TableBlogs                 = "blogs"
)

// Stores объединяет хранилища простых сущностей каталога и контента.
type Stores struct {
	Languages            *Store[model.Language]
	Categories           *Store[model.Category]
	SubCategories        *Store[model.SubCategory]
	SubSubCategories     *Store[model.SubSubCategory]
	Itineraries          *Store[model.Itinerary]
	EssentialInformation *Store[model.EssentialInformation]
	Faqs                 *Store[model.Faq]
	FaqPackages          *Store[model.FaqPackage]
	IncludeExcludes      *Store[model.IncludeExclude]
	IncludeExcludePkgs   *Store[model.IncludeExcludePackage]
	PackageImages        *Store[model.PackageImage]
	PackageGalleries     *Store[model.PackageGallery]
	HomePageSliders      *Store[model.HomePageSlider]
	HomePackages         *Store[model.HomePackage]
	Abouts               *Store[model.About]
	Contacts             *Store[model.Contact]
	Blogs                *Store[model.Blog]
}

// NewStores создает хранилища всех простых сущностей.
func NewStores(db *sqlx.DB) *Stores {
	return &Stores{
		Languages:            NewStore[model.Language](db, TableLanguages, "Language", "language"),
		Categories:           NewStore[model.Category](db, TableCategories, "Category", "category_name", "language_id"),
		SubCategories:        NewStore[model.SubCategory](db, TableSubCategories, "Sub Category", "category_id", "language_id", "sub_category_name"),
		SubSubCategories:     NewStore[model.SubSubCategory](db, TableSubSubCategories, "Sub Sub Category", "category_id", "language_id", "sub_category_id", "sub_sub_category_name"),
		Itineraries:          NewStore[model.Itinerary](db, TableItineraries, "Itinerary", "package_id", "day", "title", "description"),
		EssentialInformation: NewStore[model.EssentialInformation](db, TableEssentialInformation, "Essential Information", "package_id", "title", "description"),
		Faqs:                 NewStore[model.Faq](db, TableFaqs, "Faq", "faq_question", "faq_answer"),
		FaqPackages:          NewStore[model.FaqPackage](db, TableFaqPackages, "Faq Package", "package_id", "faq_id"),
		IncludeExcludes:      NewStore[model.IncludeExclude](db, TableIncludeExcludes, "Include Exclude", "title", "type"),
		IncludeExcludePkgs:   NewStore[model.IncludeExcludePackage](db, TableIncludeExcludePackage, "Include Exclude Package", "package_id", "include_exclude_id"),
		PackageImages:        NewStore[model.PackageImage](db, TablePackageImages, "Package Image", "package_id", "image"),
		PackageGalleries:     NewStore[model.PackageGallery](db, TablePackageGalleries, "Package Gallery", "package_id", "image"),
		HomePageSliders:      NewStore[model.HomePageSlider](db, TableHomePageSliders, "Home Page Slider", "title", "description", "slider_image", "language_id"),
		HomePackages:         NewStore[model.HomePackage](db, TableHomePackages, "Home Package", "package_id"),
		Abouts:               NewStore[model.About](db, TableAbouts, "About", "title", "short_description", "description", "language_id"),
		Contacts:             NewStore[model.Contact](db, TableContacts, "Contact", "full_name", "email", "contact_no", "address", "message"),
		Blogs:                NewStore[model.Blog](db, TableBlogs, "Blog", "title", "short_description", "image", "description"),
	}
}
