package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	customErrors "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/errors"
	"github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/auth/model"
	catalogModel "github.com/Miraines/MoonyAndStarry/menu-service/internal/domain/catalog/model"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &catalogModel.Product{}, &catalogModel.ChangeLogEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newUser(email string) model.User {
	return model.User{ID: uuid.New(), Name: "Ann", Email: email, PasswordHash: "h"}
}

func TestPostgresUserRepo_CreateAndGet(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	user := newUser("ann@x.com")

	id, err := repo.CreateUser(ctx, user)
	if err != nil || id != user.ID {
		t.Fatalf("create %v", err)
	}
	got, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil || got.ID != user.ID || got.Verified {
		t.Fatalf("get by email %v %+v", err, got)
	}
	got2, err := repo.GetUserByID(ctx, user.ID)
	if err != nil || got2.Email != user.Email {
		t.Fatalf("get by id %v", err)
	}
	if _, err := repo.GetUserByEmail(ctx, "ghost@x.com"); !customErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := repo.GetUserByID(ctx, uuid.New()); !customErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgresUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, newUser("ann@x.com")); err != nil {
		t.Fatalf("create %v", err)
	}
	_, err := repo.CreateUser(ctx, newUser("ann@x.com"))
	if !customErrors.IsAlreadyExists(err) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestPostgresUserRepo_MarkVerified(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	_, _ = repo.CreateUser(ctx, newUser("ann@x.com"))

	if err := repo.MarkVerified(ctx, "ann@x.com"); err != nil {
		t.Fatalf("mark %v", err)
	}
	got, _ := repo.GetUserByEmail(ctx, "ann@x.com")
	if !got.Verified {
		t.Fatal("expected verified")
	}
	if err := repo.MarkVerified(ctx, "ann@x.com"); !customErrors.IsAlreadyVerified(err) {
		t.Fatalf("expected already verified, got %v", err)
	}
	if err := repo.MarkVerified(ctx, "ghost@x.com"); !customErrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPostgresUserRepo_MarkVerifiedConcurrent(t *testing.T) {
	repo := NewPostgresUserRepo(setupDB(t))
	ctx := context.Background()
	_, _ = repo.CreateUser(ctx, newUser("ann@x.com"))

	const n = 8
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.MarkVerified(ctx, "ann@x.com")
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			} else if !customErrors.IsAlreadyVerified(err) {
				t.Errorf("unexpected %v", err)
			}
		}()
	}
	wg.Wait()
	if ok != 1 {
		t.Fatalf("want exactly one transition, got %d", ok)
	}
}
