// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/infra/dependency"
	"github.com/budget-ledger/backend/internal/integration/persistence/model"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Values captured from earlier responses, substituted into later
	// requests as {name} placeholders.
	saved map[string]string

	// Infra
	db  *gorm.DB
	cfg *config.Config
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// newScenarioDB opens a fresh in-memory sqlite database with the full schema.
func newScenarioDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// A single connection keeps the in-memory database alive across the pool.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.CategoryModel{},
		&model.PeriodModel{},
		&model.BudgetItemModel{},
		&model.RealizationEntryModel{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate scenario database: %w", err)
	}

	return db, nil
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		db, err := newScenarioDB()
		if err != nil {
			return ctx, err
		}

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			saved:          make(map[string]string),
			db:             db,
			cfg:            config.Load(),
		}

		injector := dependency.NewInjector(tc.cfg, db, func() bool { return true })
		tc.engine = injector.Router.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.db != nil {
				if sqlDB, dbErr := tc.db.DB(); dbErr == nil {
					_ = sqlDB.Close()
				}
			}
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I store the response field "([^"]*)" as "([^"]*)"$`, iStoreTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
}

// substitute replaces {name} placeholders with values captured earlier.
func (tc *TestContext) substitute(s string) string {
	for name, value := range tc.saved {
		s = strings.ReplaceAll(s, "{"+name+"}", value)
	}
	return s
}

// lookupField resolves a dotted field path such as "summary.total_items" or
// "items.0.code" in the decoded response body.
func lookupField(body []byte, path string) (interface{}, error) {
	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = value
		case []interface{}:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	return nil
}

func (tc *TestContext) send(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+tc.substitute(endpoint), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.send(method, endpoint, nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.send(method, endpoint, bytes.NewBufferString(tc.substitute(body.Content))); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSetHeaderTo(ctx context.Context, header, value string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return SetTestContext(ctx, tc), nil
}

func iStoreTheResponseFieldAs(ctx context.Context, field, name string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	value, err := lookupField(tc.responseBody, field)
	if err != nil {
		return ctx, err
	}
	tc.saved[name] = fmt.Sprintf("%v", value)
	return SetTestContext(ctx, tc), nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), tc.substitute(expected)) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	value, err := lookupField(tc.responseBody, field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != tc.substitute(expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if _, err := lookupField(tc.responseBody, field); err != nil {
		return err
	}
	return nil
}
