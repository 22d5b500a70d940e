package handler

import (
	"github.com/anupgautam/trekkers-encounter-backend/internal/media"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/gin-gonic/gin"
)

// NewRouter собирает маршруты /basic, /user, /health и статику /media.
func NewRouter(h *Handler, limiter *RateLimiter) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.Log))
	r.GET("/health", h.Health)
	if h.Media != nil {
		r.Static("/media", h.Media.Dir())
	}

	basic := r.Group("/basic")
	user := basic.Group("", h.Authenticate)
	admin := basic.Group("", h.Authenticate, h.RequireAdmin)
	h.catalogRoutes(basic, admin)

	// пакеты
	basic.GET("/package/", h.ListPackages)
	basic.GET("/package/:postId", h.GetPackage)
	basic.GET("/package_page/", h.PackagePage)
	basic.GET("/package_category/:category_id", h.PackagesBy("category_id"))
	basic.GET("/package_sub_category/:sub_category_id", h.PackagesBy("sub_category_id"))
	basic.GET("/package_sub_sub_category/:sub_sub_category_id", h.PackagesBy("sub_sub_category_id"))
	basic.GET("/package_language/:language_id", h.PackagesBy("language_id"))
	admin.POST("/package/", h.CreatePackage)
	admin.PATCH("/package/:postId", h.UpdatePackage)
	admin.DELETE("/package/:postId", h.DeletePackage)

	// связи пакета
	admin.PATCH("/faq_package_package/", h.Reconcile(h.FaqLinks, "faqPackageItems", "updatedFaqPackages"))
	admin.PATCH("/include_exclude_package_package/", h.Reconcile(h.IncludeLinks, "includeItems", "updatedItems"))
	basic.GET("/faq_package_members/:package_id", h.Members(h.FaqLinks))
	basic.GET("/include_exclude_package_members/:package_id", h.Members(h.IncludeLinks))

	// отзывы
	basic.GET("/review/", h.ListReviews)
	basic.GET("/review/:postId", h.GetReview)
	basic.GET("/review_package/:package_id", h.ReviewsByPackage)
	basic.GET("/most/reviewed/", h.MostReviewed)
	user.POST("/review/", h.CreateReview)
	user.PATCH("/review/:postId", h.UpdateReview)
	user.DELETE("/review/:postId", h.DeleteReview)

	// бронирования
	user.POST("/package_booking/", h.CreateBooking)
	user.GET("/package_booking/:postId", h.GetBooking)
	user.GET("/package_booking/:postId/voucher", h.BookingVoucher)
	admin.GET("/package_booking/", h.ListBookings)
	admin.PATCH("/package_booking/:postId", h.UpdateBookingStatus)
	admin.DELETE("/package_booking/:postId", h.DeleteBooking)

	// пользователи
	users := r.Group("/user")
	auth := users.Group("", limiter.Limit)
	auth.POST("/signup/", h.Signup)
	auth.POST("/login/", h.Login)
	auth.GET("/verify", h.Verify)
	auth.POST("/token/refresh/", h.Refresh)
	auth.POST("/forgot/password/", h.ForgotPassword)
	auth.POST("/change/password/", h.ResetPassword)

	signedIn := users.Group("", h.Authenticate)
	signedIn.POST("/change/new/password", h.ChangePassword)
	signedIn.GET("/user/:postId", h.GetUser)
	signedIn.PUT("/user/:postId", h.UpdateUser)

	usersAdmin := users.Group("", h.Authenticate, h.RequireAdmin)
	usersAdmin.GET("/user", h.ListUsers)
	usersAdmin.PATCH("/admin/:postId", h.SetAdmin)

	return r
}

func (h *Handler) catalogRoutes(public, admin *gin.RouterGroup) {
	cat := h.Catalog

	languages := newResource[model.Language](h, cat.Languages)
	languages.routes(public, admin, "language")

	categories := newResource[model.Category](h, cat.Categories)
	categories.routes(public, admin, "category")
	public.GET("/category_language/:language_id", categories.listBy("language_id"))

	subCategories := newResource[model.SubCategory](h, cat.SubCategories)
	subCategories.routes(public, admin, "sub_category")
	public.GET("/sub_category_language/:language_id", subCategories.listBy("language_id"))
	public.GET("/sub_category_category/:category_id", subCategories.listBy("category_id"))

	subSubCategories := newResource[model.SubSubCategory](h, cat.SubSubCategories)
	subSubCategories.routes(public, admin, "sub_sub_category")
	public.GET("/sub_sub_category_language/:language_id", subSubCategories.listBy("language_id"))
	public.GET("/sub_sub_category_sub_category/:sub_category_id", subSubCategories.listBy("sub_category_id"))

	itineraries := newResource[model.Itinerary](h, cat.Itineraries).
		withParent(func(it *model.Itinerary, pid int64) {
			if it.PackageID == 0 {
				it.PackageID = pid
			}
		})
	itineraries.routes(public, admin, "itinerary")
	public.GET("/itinerary_package/:package_id", itineraries.listBy("package_id"))
	admin.POST("/itinerary_bulk/", itineraries.bulkJSON("itineraryItems"))

	essentials := newResource[model.EssentialInformation](h, cat.EssentialInformation).
		withParent(func(e *model.EssentialInformation, pid int64) {
			if e.PackageID == 0 {
				e.PackageID = pid
			}
		})
	essentials.routes(public, admin, "essential_information")
	public.GET("/essential_information_package/:package_id", essentials.listBy("package_id"))
	admin.POST("/essential_information_bulk/", essentials.bulkJSON("essentialItems"))

	faqs := newResource[model.Faq](h, cat.Faqs)
	faqs.routes(public, admin, "faq")

	faqPackages := newResource[model.FaqPackage](h, cat.FaqPackages).
		withParent(func(f *model.FaqPackage, pid int64) {
			if f.PackageID == 0 {
				f.PackageID = pid
			}
		})
	faqPackages.routes(public, admin, "faq_package")
	admin.POST("/faq_package_package/", faqPackages.create)
	admin.POST("/faq_package_bulk/", faqPackages.bulkJSON("faqPackageItems"))
	public.GET("/faq_package_package/:package_id", faqPackages.listBy("package_id"))

	includeExcludes := newResource[model.IncludeExclude](h, cat.IncludeExcludes)
	includeExcludes.routes(public, admin, "include_exclude")

	includePackages := newResource[model.IncludeExcludePackage](h, cat.IncludeExcludePkgs).
		withParent(func(i *model.IncludeExcludePackage, pid int64) {
			if i.PackageID == 0 {
				i.PackageID = pid
			}
		})
	includePackages.routes(public, admin, "include_exclude_package")
	admin.POST("/include_exclude_package_bulk/", includePackages.bulkJSON("includeItems"))
	public.GET("/include_exclude_package_package/:package_id", includePackages.listBy("package_id"))

	packageImages := newResource[model.PackageImage](h, cat.PackageImages).
		withUpload("image", media.KindOtherImages,
			func(p *model.PackageImage) string { return p.Image },
			func(p *model.PackageImage, url string) { p.Image = url }).
		withParent(func(p *model.PackageImage, pid int64) { p.PackageID = pid })
	packageImages.routes(public, admin, "package_image")
	admin.POST("/package_image_bulk/", packageImages.bulkFiles)
	public.GET("/package_image_package/:package_id", packageImages.listBy("package_id"))

	galleries := newResource[model.PackageGallery](h, cat.PackageGalleries).
		withUpload("image", media.KindGallery,
			func(p *model.PackageGallery) string { return p.Image },
			func(p *model.PackageGallery, url string) { p.Image = url }).
		withParent(func(p *model.PackageGallery, pid int64) { p.PackageID = pid })
	galleries.routes(public, admin, "package_gallery")
	admin.POST("/package_gallery_bulk/", galleries.bulkFiles)
	public.GET("/package_gallery_package/:package_id", galleries.listBy("package_id"))

	sliders := newResource[model.HomePageSlider](h, cat.HomePageSliders).
		withUpload("slider_image", media.KindHomePage,
			func(s *model.HomePageSlider) string { return s.SliderImage },
			func(s *model.HomePageSlider, url string) { s.SliderImage = url })
	sliders.routes(public, admin, "home_page")
	public.GET("/home_page_language/:language_id", sliders.listBy("language_id"))

	homePackages := newResource[model.HomePackage](h, cat.HomePackages)
	public.GET("/home_package/", h.HomePackages)
	public.GET("/home_package/:postId", homePackages.get)
	admin.POST("/home_package/", homePackages.create)
	admin.PATCH("/home_package/:postId", homePackages.update)
	admin.DELETE("/home_package/:postId", homePackages.remove)

	abouts := newResource[model.About](h, cat.Abouts)
	abouts.routes(public, admin, "about")
	public.GET("/about_language/:language_id", abouts.listBy("language_id"))

	// Обращения посетителей видят только администраторы.
	contacts := newResource[model.Contact](h, cat.Contacts)
	public.POST("/contact/", contacts.create)
	admin.GET("/contact/", contacts.list)
	admin.GET("/contact/:postId", contacts.get)
	admin.PATCH("/contact/:postId", contacts.update)
	admin.DELETE("/contact/:postId", contacts.remove)

	blogs := newResource[model.Blog](h, cat.Blogs).
		withUpload("image", media.KindBlog,
			func(b *model.Blog) string { return b.Image },
			func(b *model.Blog, url string) { b.Image = url })
	blogs.routes(public, admin, "blog")
}
