package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/moundir-nedjm/ponpro-backend/internal/config"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/user"
	"github.com/moundir-nedjm/ponpro-backend/internal/fixtures"
	appHTTP "github.com/moundir-nedjm/ponpro-backend/internal/handler/http"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/database"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/jwt"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/sse"
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
	"github.com/moundir-nedjm/ponpro-backend/internal/repository/memory"
	"github.com/moundir-nedjm/ponpro-backend/internal/repository/postgresql"
	attendanceService "github.com/moundir-nedjm/ponpro-backend/internal/service/attendance"
	serviceAuth "github.com/moundir-nedjm/ponpro-backend/internal/service/auth"
	catalogService "github.com/moundir-nedjm/ponpro-backend/internal/service/catalog"
	matrixService "github.com/moundir-nedjm/ponpro-backend/internal/service/matrix"
	notifierService "github.com/moundir-nedjm/ponpro-backend/internal/service/notifier"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	var (
		cellRepo     attendance.CellRepository
		codeRepo     code.Repository
		employeeRepo employee.Repository
		holidayRepo  calendar.HolidayRepository
		userRepo     user.Repository
		transactor   catalogService.Transactor
	)

	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		cellRepo = postgresql.NewCellRepository(db)
		codeRepo = postgresql.NewCodeRepository(db)
		employeeRepo = postgresql.NewEmployeeRepository(db)
		holidayRepo = postgresql.NewHolidayRepository(db)
		userRepo = postgresql.NewUserRepository(db)
		transactor = postgresql.NewTransactor(db)

	case "memory":
		// Local development without a database: a demo directory and an
		// admin account whose password is hashed at startup.
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash demo password: ", err)
		}
		holidays, err := memory.NewHolidayRepository()
		if err != nil {
			log.Fatal("Failed to build holiday repository: ", err)
		}
		cellRepo = memory.NewCellRepository()
		codeRepo = memory.NewCodeRepository()
		employeeRepo = memory.NewEmployeeRepository(fixtures.DevEmployees()...)
		holidayRepo = holidays
		userRepo = memory.NewUserRepository(fixtures.DevAdminUser(string(hash)))
		transactor = memory.NewTransactor()

	default:
		log.Fatal("Unsupported store driver: ", cfg.Store.Driver)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.SSEExpiration)
	hub := sse.NewHub()

	workdayStart, ok := validator.IsValidClock(cfg.Attendance.WorkdayStart)
	if !ok {
		log.Fatal("Invalid workday start: ", cfg.Attendance.WorkdayStart)
	}
	rules := matrixService.Rules{
		WorkdayStart:  workdayStart,
		Grace:         time.Duration(cfg.Attendance.GraceMinutes) * time.Minute,
		PresentSymbol: cfg.Attendance.PresentSymbol,
		LateSymbol:    cfg.Attendance.LateSymbol,
		HolidaySymbol: cfg.Attendance.HolidaySymbol,
		WeekendSymbol: cfg.Attendance.WeekendSymbol,
	}

	matrixSvc := matrixService.NewMatrixService(
		cellRepo,
		codeRepo,
		employeeRepo,
		holidayRepo,
		cfg.Attendance.WeekendDays,
		rules,
		cfg.Attendance.MatrixTimeout,
	)
	notifier := notifierService.NewCellNotifier(hub)
	authorizer := serviceAuth.NewEditorAuthorizer(userRepo, employeeRepo)
	catalogGuard := code.NewReferenceGuard()
	attendanceSvc := attendanceService.NewAttendanceService(
		cellRepo,
		codeRepo,
		employeeRepo,
		authorizer,
		matrixSvc,
		notifier,
		catalogGuard,
	)
	catalogSvc := catalogService.NewCatalogService(codeRepo, cellRepo, transactor, catalogGuard)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)

	if err := catalogSvc.Seed(context.Background(), fixtures.DefaultCodes()); err != nil {
		log.Fatal("Failed to seed code catalog: ", err)
	}

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	matrixHandler := appHTTP.NewMatrixHandler(matrixSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	catalogHandler := appHTTP.NewCatalogHandler(catalogSvc)
	streamHandler := appHTTP.NewStreamHandler(hub, JWTService)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		matrixHandler,
		attendanceHandler,
		catalogHandler,
		streamHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
