package routes

import (
	"github.com/Anuragprasad270204/hostel-management/internal/app/controllers"
	"github.com/Anuragprasad270204/hostel-management/internal/app/models"
	"github.com/Anuragprasad270204/hostel-management/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	hostelController *controllers.HostelController,
	roomController *controllers.RoomController,
	studentController *controllers.StudentController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Everything else requires a valid token
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		// Profile routes: the calling student's own record
		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetMyProfile)
			profile.POST("/complete", profileController.CompleteProfile)
			profile.POST("/checkout", profileController.CheckOut)
		}

		// Hostel routes: reads for everyone, writes for admins
		hostels := authenticated.Group("/hostels")
		{
			hostels.GET("", hostelController.GetAllHostels)
			hostels.GET("/:id", hostelController.GetHostelByID)

			hostelsAdmin := hostels.Group("")
			hostelsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				hostelsAdmin.POST("", hostelController.CreateHostel)
				hostelsAdmin.PUT("/:id", hostelController.UpdateHostel)
				hostelsAdmin.DELETE("/:id", hostelController.DeleteHostel)
			}
		}

		// Room routes: reads and booking for everyone, management for admins
		rooms := authenticated.Group("/rooms")
		{
			rooms.GET("", roomController.GetRooms)
			rooms.GET("/:id", roomController.GetRoomByID)
			rooms.POST("/book", roomController.BookRoom)

			roomsAdmin := rooms.Group("")
			roomsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				roomsAdmin.POST("", roomController.CreateRoom)
				roomsAdmin.PUT("/:id", roomController.UpdateRoom)
				roomsAdmin.DELETE("/:id", roomController.DeleteRoom)
			}
		}

		// Student records and user accounts are admin territory
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			students := admin.Group("/students")
			{
				students.POST("", studentController.CreateStudent)
				students.GET("", studentController.GetStudents)
				students.GET("/:id", studentController.GetStudentByID)
				students.PUT("/:id", studentController.UpdateStudent)
				students.DELETE("/:id", studentController.DeleteStudent)
				students.PUT("/:id/room", studentController.AdmitStudent)
				students.POST("/:id/checkout", studentController.CheckOutStudent)
			}

			admin.GET("/users", authController.GetUsers)
		}
	}
}
