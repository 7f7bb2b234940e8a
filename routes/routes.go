package routes

import (
	"SwipeEstate/handlers"
	"SwipeEstate/middleware"
	"SwipeEstate/services"
	"SwipeEstate/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// App is everything the HTTP layer needs from the rest of the process.
type App struct {
	Environment string
	Logger      *zap.Logger
	Accounts    *services.AccountService
	Listings    *services.ListingService
	Preferences *services.PreferenceService
	Favorites   *services.FavoriteService
	Leads       *services.LeadService
	Feed        *services.FeedService
}

// NewServer builds the echo instance with the shared middleware stack and
// every route registered.
func NewServer(app App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = utils.NewRequestValidator()

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(app.Logger))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	RegisterRoutes(e, app)
	return e
}

func RegisterRoutes(e *echo.Echo, app App) {
	requireAuth := middleware.JWTMiddleware(app.Accounts)

	e.GET("/health", handlers.HealthCheck(app.Environment))

	authController := handlers.NewAuthController(app.Accounts, app.Logger)
	auth := e.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/me", authController.Me, requireAuth)
	auth.POST("/telegram/login-or-register", authController.TelegramLoginOrRegister)

	listingController := handlers.NewListingController(app.Listings, app.Logger)
	listings := e.Group("/listings")
	listings.GET("", listingController.ListListings)
	listings.GET("/:id", listingController.GetListing)
	listings.POST("", listingController.CreateListing, requireAuth)
	listings.PUT("/:id", listingController.UpdateListing, requireAuth)
	listings.DELETE("/:id", listingController.DeleteListing, requireAuth)

	preferenceController := handlers.NewPreferenceController(app.Preferences, app.Logger)
	preferences := e.Group("/preferences", requireAuth)
	preferences.GET("", preferenceController.GetPreferences)
	preferences.POST("", preferenceController.SavePreferences)

	favoriteController := handlers.NewFavoriteController(app.Favorites, app.Logger)
	favorites := e.Group("/favorites", requireAuth)
	favorites.GET("", favoriteController.GetFavorites)
	favorites.POST("", favoriteController.CreateFavorite)
	favorites.DELETE("/:listing_id", favoriteController.DeleteFavorite)

	leadController := handlers.NewLeadController(app.Leads, app.Logger)
	leads := e.Group("/leads", requireAuth)
	leads.POST("", leadController.CreateLead)
	leads.GET("/my", leadController.MyLeads)
	leads.GET("/for-me", leadController.LeadsForMe)
	leads.PATCH("/:id", leadController.UpdateLeadStatus)

	feedController := handlers.NewFeedController(app.Feed, app.Logger)
	feed := e.Group("/feed", requireAuth)
	feed.GET("/next", feedController.NextListing)
	feed.POST("/action", feedController.RecordAction)

	adminController := handlers.NewAdminController(app.Accounts, app.Listings, app.Logger)
	admin := e.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.GET("/users", adminController.GetAllUsers)
	admin.PATCH("/users/:id", adminController.UpdateUser)
	admin.GET("/listings", adminController.GetAllListings)
}
