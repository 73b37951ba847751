// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/branchledger/backend/config"
	"github.com/branchledger/backend/internal/domain/entity"
	"github.com/branchledger/backend/internal/infra/dependency"
	"github.com/branchledger/backend/internal/integration/adapters"
	"github.com/branchledger/backend/internal/integration/persistence/model"
	"github.com/branchledger/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	operatorEmail    = "operator@branch.example"
	operatorPassword = "OperatorPass123!"
)

var operatorID = uuid.MustParse("6f1b24a0-9c1d-4a52-8f50-0e6f2a3b4c5d")

var serverOnce sync.Once
var testServer *httptest.Server
var testDB *mock.Db

var accountPlaceholder = regexp.MustCompile(`\{\{account:([^}]+)\}\}`)

type testContext struct {
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken string
	db          *mock.Db

	accounts            map[string]uuid.UUID
	lastTransactionID   uuid.UUID
	pairedTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if testServer != nil {
			testServer.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"accounts":         &model.AccountModel{},
			"transactions":     &model.TransactionModel{},
			"daily_balances":   &model.DailyBalanceModel{},
			"bulk_corrections": &model.BulkCorrectionModel{},
			"email_queue":      &model.EmailQueueModel{},
		}),
	}
	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Seeding steps
	ctx.Given(`^an account "([^"]*)" exists with balance "([^"]*)"$`, test.anAccountExistsWithBalance)
	ctx.Given(`^a "([^"]*)" of "([^"]*)" exists for "([^"]*)" on (today|yesterday)$`, test.aTransactionExistsFor)
	ctx.Given(`^the day (today|yesterday) is closed for "([^"]*)" with actual balance "([^"]*)"$`, test.theDayIsClosedFor)

	// Auth steps
	ctx.Given(`^I am authenticated$`, test.iAmAuthenticated)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the account "([^"]*)" balance should be "([^"]*)"$`, test.theAccountBalanceShouldBe)
	ctx.Then(`^the daily balance for "([^"]*)" on (today|yesterday) should be (closed|open)$`, test.theDailyBalanceShouldBe)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.accounts = make(map[string]uuid.UUID)
	t.lastTransactionID = uuid.Nil
	t.pairedTransactionID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverOnce.Do(func() {
		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			JWT: config.JWTConfig{
				Secret:            testJWTSecret,
				AccessTokenExpiry: time.Hour,
			},
			Auth: config.AuthConfig{
				OperatorID:           operatorID.String(),
				OperatorEmail:        operatorEmail,
				OperatorPasswordHash: hashPassword(operatorPassword),
			},
		}

		injector, err := dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis())
		if err != nil {
			panic("failed to wire test server: " + err.Error())
		}

		testServer = httptest.NewServer(injector.Router.Setup("test"))
	})
}

func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashed)
}

func today() time.Time {
	return entity.DateOf(time.Now().UTC())
}

func resolveDay(day string) time.Time {
	if day == "yesterday" {
		return today().AddDate(0, 0, -1)
	}
	return today()
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) anAccountExistsWithBalance(name, balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	now := time.Now().UTC()
	account := &model.AccountModel{
		ID:             uuid.New(),
		BranchID:       uuid.New(),
		Name:           name,
		CurrentBalance: amount,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.db.DbConn.Create(account).Error; err != nil {
		return err
	}

	t.accounts[name] = account.ID
	return nil
}

func (t *testContext) aTransactionExistsFor(txType, amount, accountName, day string) error {
	accountID, ok := t.accounts[accountName]
	if !ok {
		return fmt.Errorf("account %q was not seeded", accountName)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	tx := entity.NewTransaction(accountID, resolveDay(day), "10:00:00",
		entity.TransactionType(txType), value, decimal.Zero, nil, "", operatorID)
	t.lastTransactionID = tx.ID

	return t.db.DbConn.Create(model.TransactionFromEntity(tx)).Error
}

func (t *testContext) theDayIsClosedFor(day, accountName, actualBalance string) error {
	accountID, ok := t.accounts[accountName]
	if !ok {
		return fmt.Errorf("account %q was not seeded", accountName)
	}

	actual, err := decimal.NewFromString(actualBalance)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", actualBalance, err)
	}

	now := time.Now().UTC()
	closedBy := operatorID
	record := &model.DailyBalanceModel{
		AccountID:      accountID,
		BalanceDate:    resolveDay(day),
		OpeningBalance: decimal.Zero,
		ClosingBalance: actual,
		ActualBalance:  actual,
		IsClosed:       true,
		ClosedBy:       &closedBy,
		ClosedAt:       sql.NullTime{Time: now, Valid: true},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return t.db.DbConn.Create(record).Error
}

func (t *testContext) iAmAuthenticated() error {
	tokenService := adapters.NewTokenService(testJWTSecret, time.Hour)
	token, err := tokenService.GenerateAccessToken(context.Background(), operatorID, operatorEmail)
	if err != nil {
		return fmt.Errorf("failed to issue test token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{today}}", today().Format("2006-01-02"))
	content = strings.ReplaceAll(content, "{{yesterday}}", today().AddDate(0, 0, -1).Format("2006-01-02"))
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())
	content = strings.ReplaceAll(content, "{{paired_transaction_id}}", t.pairedTransactionID.String())
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)

	content = accountPlaceholder.ReplaceAllStringFunc(content, func(match string) string {
		name := accountPlaceholder.FindStringSubmatch(match)[1]
		if id, ok := t.accounts[name]; ok {
			return id.String()
		}
		return match
	})

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	url := testServer.URL + path

	var req *http.Request
	var err error
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Remember created transaction ids so later steps can reference them.
	if idValue := getFieldValue(responseBody, "transaction.id"); idValue != nil {
		if id, err := uuid.Parse(fmt.Sprintf("%v", idValue)); err == nil {
			t.lastTransactionID = id
		}
	}
	if idValue := getFieldValue(responseBody, "paired_transaction.id"); idValue != nil {
		if id, err := uuid.Parse(fmt.Sprintf("%v", idValue)); err == nil {
			t.pairedTransactionID = id
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field %q not found in response: %v", field, t.response.body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field %q expected %q, got %q", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field %q not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entityModel, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table %q not found in models", table)
	}

	entityType := reflect.TypeOf(entityModel).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	if err := t.db.DbConn.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in %q, got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theAccountBalanceShouldBe(accountName, expected string) error {
	accountID, ok := t.accounts[accountName]
	if !ok {
		return fmt.Errorf("account %q was not seeded", accountName)
	}

	var account model.AccountModel
	if err := t.db.DbConn.Where("id = ?", accountID).First(&account).Error; err != nil {
		return err
	}

	want, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", expected, err)
	}
	if !account.CurrentBalance.Equal(want) {
		return fmt.Errorf("account %q balance is %s, expected %s", accountName, account.CurrentBalance, want)
	}
	return nil
}

func (t *testContext) theDailyBalanceShouldBe(accountName, day, state string) error {
	accountID, ok := t.accounts[accountName]
	if !ok {
		return fmt.Errorf("account %q was not seeded", accountName)
	}

	var record model.DailyBalanceModel
	err := t.db.DbConn.
		Where("account_id = ? AND balance_date = ?", accountID, resolveDay(day)).
		First(&record).Error
	if err != nil {
		return fmt.Errorf("daily balance not found for %q on %s: %w", accountName, day, err)
	}

	wantClosed := state == "closed"
	if record.IsClosed != wantClosed {
		return fmt.Errorf("daily balance for %q on %s: is_closed=%v, expected %v", accountName, day, record.IsClosed, wantClosed)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	objectMap, ok := object.(map[string]any)
	if !ok {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
