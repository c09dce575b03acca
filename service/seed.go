package service

import (
	"context"
	"fmt"
	"time"

	"dashboard/logger"
	"dashboard/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedNamespace 演示发票 ID 由自然键派生，重复写入时按主键跳过
var seedNamespace = uuid.MustParse("6f1c2a4e-8d4b-4f7a-9c1e-3b5d7e9f0a12")

// SeedCounts 初始化后各表行数
type SeedCounts struct {
	Users     int64 `json:"users"`
	Customers int64 `json:"customers"`
	Invoices  int64 `json:"invoices"`
	Revenue   int64 `json:"revenue"`
}

// Seeder 演示数据初始化
type Seeder struct {
	db         *gorm.DB
	timeout    time.Duration
	bcryptCost int
}

// NewSeeder 创建初始化服务，timeout 为整个事务的时限
func NewSeeder(db *gorm.DB, timeout time.Duration) *Seeder {
	return &Seeder{db: db, timeout: timeout, bcryptCost: 10}
}

// Run 在单个事务内写入用户、客户、发票与营收，返回写入后的行数。
// 返回的错误带调用栈，可用 %+v 打印。
func (s *Seeder) Run(ctx context.Context) (*SeedCounts, error) {
	log := logger.WithComponent("seed")
	log.Info("Starting database seed...")

	txCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		if err := s.seedUsers(tx); err != nil {
			return err
		}
		if err := seedCustomers(tx); err != nil {
			return err
		}
		if err := seedInvoices(tx); err != nil {
			return err
		}
		return seedRevenue(tx)
	})
	if err != nil {
		log.WithError(err).Error("Seed error")
		return nil, err
	}

	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, err
	}
	log.WithField("users", counts.Users).
		WithField("customers", counts.Customers).
		WithField("invoices", counts.Invoices).
		WithField("revenue", counts.Revenue).
		Info("Seed completed successfully")
	return counts, nil
}

// Counts 统计各表行数
func (s *Seeder) Counts(ctx context.Context) (*SeedCounts, error) {
	var counts SeedCounts
	db := s.db.WithContext(ctx)
	targets := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &counts.Users},
		{&models.Customer{}, &counts.Customers},
		{&models.Invoice{}, &counts.Invoices},
		{&models.Revenue{}, &counts.Revenue},
	}
	for _, t := range targets {
		if err := db.Model(t.model).Count(t.dest).Error; err != nil {
			return nil, errors.Wrap(err, "count rows")
		}
	}
	return &counts, nil
}

func (s *Seeder) seedUsers(tx *gorm.DB) error {
	users := make([]models.User, 0, len(models.PlaceholderUsers))
	for _, u := range models.PlaceholderUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.bcryptCost)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}
		users = append(users, models.User{ID: u.ID, Name: u.Name, Email: u.Email, Password: string(hashed)})
	}
	err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&users).Error
	return errors.Wrap(err, "seed users")
}

func seedCustomers(tx *gorm.DB) error {
	customers := append([]models.Customer(nil), models.PlaceholderCustomers...)
	err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&customers).Error
	return errors.Wrap(err, "seed customers")
}

func seedInvoices(tx *gorm.DB) error {
	var existing int64
	if err := tx.Model(&models.Invoice{}).Count(&existing).Error; err != nil {
		return errors.Wrap(err, "count invoices")
	}
	if existing > 0 {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Invoice{}).Error
		if err != nil {
			return errors.Wrap(err, "clear invoices")
		}
	}

	invoices := make([]models.Invoice, 0, len(models.PlaceholderInvoices))
	for _, p := range models.PlaceholderInvoices {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return errors.Wrapf(err, "parse invoice date %q", p.Date)
		}
		invoices = append(invoices, models.Invoice{
			ID:         SeedInvoiceID(p),
			CustomerID: p.CustomerID,
			Amount:     p.Amount,
			Status:     p.Status,
			Date:       datatypes.Date(date),
		})
	}
	err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&invoices).Error
	return errors.Wrap(err, "seed invoices")
}

func seedRevenue(tx *gorm.DB) error {
	revenue := append([]models.Revenue(nil), models.PlaceholderRevenue...)
	err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "month"}}, DoNothing: true}).
		Create(&revenue).Error
	return errors.Wrap(err, "seed revenue")
}

// SeedInvoiceID 由客户、金额、状态、日期派生的确定性 ID
func SeedInvoiceID(p models.PlaceholderInvoice) string {
	key := fmt.Sprintf("%s|%d|%s|%s", p.CustomerID, p.Amount, p.Status, p.Date)
	return uuid.NewSHA1(seedNamespace, []byte(key)).String()
}
