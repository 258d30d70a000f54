// Package dependency provides dependency injection for the application.
package dependency

import (
	"gorm.io/gorm"

	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/application/usecase/budgetitem"
	"github.com/budget-ledger/backend/internal/application/usecase/category"
	"github.com/budget-ledger/backend/internal/application/usecase/period"
	"github.com/budget-ledger/backend/internal/application/usecase/realization"
	"github.com/budget-ledger/backend/internal/application/usecase/rollup"
	"github.com/budget-ledger/backend/internal/infra/server/router"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/budget-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// dbHealthChecker feeds the health endpoint; pass nil when no database is
// reachable.
func NewInjector(cfg *config.Config, db *gorm.DB, dbHealthChecker func() bool) *Injector {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	periodRepo := persistence.NewPeriodRepository(db)
	itemRepo := persistence.NewBudgetItemRepository(db)
	realizationRepo := persistence.NewRealizationRepository(db)
	txManager := persistence.NewTxManager(db)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	deactivateCategoryUseCase := category.NewDeactivateCategoryUseCase(categoryRepo, itemRepo)

	// Create period use cases
	createPeriodUseCase := period.NewCreatePeriodUseCase(periodRepo)
	listPeriodsUseCase := period.NewListPeriodsUseCase(periodRepo)
	updatePeriodStatusUseCase := period.NewUpdatePeriodStatusUseCase(periodRepo)
	deactivatePeriodUseCase := period.NewDeactivatePeriodUseCase(periodRepo, itemRepo, realizationRepo)

	// Create budget item use cases
	createItemUseCase := budgetitem.NewCreateItemUseCase(itemRepo, categoryRepo, periodRepo, txManager)
	listItemsUseCase := budgetitem.NewListItemsUseCase(itemRepo, periodRepo)
	deactivateItemUseCase := budgetitem.NewDeactivateItemUseCase(itemRepo, realizationRepo)

	// Create realization use cases
	postRealizationUseCase := realization.NewPostRealizationUseCase(realizationRepo, itemRepo, periodRepo)
	listRealizationsUseCase := realization.NewListRealizationsUseCase(realizationRepo)
	updateRealizationUseCase := realization.NewUpdateRealizationUseCase(realizationRepo, periodRepo)
	deleteRealizationUseCase := realization.NewDeleteRealizationUseCase(realizationRepo)
	importRealizationsUseCase := realization.NewImportRealizationsUseCase(realizationRepo, itemRepo, txManager)

	// Create rollup use case
	computeRollupUseCase := rollup.NewComputeRollupUseCase(
		itemRepo,
		realizationRepo,
		periodRepo,
		categoryRepo,
		cfg.Rollup.ComputeTimeout,
	)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		deactivateCategoryUseCase,
	)

	periodController := controller.NewPeriodController(
		createPeriodUseCase,
		listPeriodsUseCase,
		updatePeriodStatusUseCase,
		deactivatePeriodUseCase,
	)

	budgetItemController := controller.NewBudgetItemController(
		createItemUseCase,
		listItemsUseCase,
		deactivateItemUseCase,
	)

	realizationController := controller.NewRealizationController(
		postRealizationUseCase,
		listRealizationsUseCase,
		updateRealizationUseCase,
		deleteRealizationUseCase,
		importRealizationsUseCase,
	)

	rollupController := controller.NewRollupController(computeRollupUseCase)

	// Create router
	r := router.NewRouter(
		healthController,
		categoryController,
		periodController,
		budgetItemController,
		realizationController,
		rollupController,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
