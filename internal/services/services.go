package services

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/Brayzonn/shortlink/internal/db"
	"github.com/Brayzonn/shortlink/internal/repositories/memstore"
	"github.com/Brayzonn/shortlink/internal/repositories/sql"
	"github.com/Brayzonn/shortlink/internal/services/health"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceTypeSQLite   ServiceType = "sqlite"
	ServiceTypeInMemory ServiceType = "inMemory"
)

type Services struct {
	LinkService *LinkService
	UserService *UserService
	Refresher   *health.Refresher
}

func Factory(conn any, sType ServiceType, baseURL *url.URL, logger *logrus.Logger) (*Services, error) {
	switch sType {
	case ServiceTypeSQLite:
		gormDB, ok := conn.(*gorm.DB)
		if !ok {
			return nil, errors.New("invalid connection type. expected *gorm.DB")
		}
		return getSQLServices(gormDB, baseURL, logger), nil
	case ServiceTypeInMemory:
		return getInMemoryServices(baseURL, logger), nil
	default:
		return nil, fmt.Errorf("unknown service type: %s", sType)
	}
}

func getSQLServices(conn *gorm.DB, baseURL *url.URL, logger *logrus.Logger) *Services {
	linkRepo := sql.NewLinkRepo(conn, logger)
	userRepo := sql.NewUserRepo(conn, logger)
	return &Services{
		LinkService: NewLinkService(linkRepo, baseURL, logger),
		UserService: NewUserService(userRepo, logger),
		Refresher:   health.NewRefresher(linkRepo, logger),
	}
}

func getInMemoryServices(baseURL *url.URL, logger *logrus.Logger) *Services {
	linkRepo := memstore.NewLinkRepo(db.NewMemStorage())
	userRepo := memstore.NewUserRepo(db.NewMemStorage())
	return &Services{
		LinkService: NewLinkService(linkRepo, baseURL, logger),
		UserService: NewUserService(userRepo, logger),
		Refresher:   health.NewRefresher(linkRepo, logger),
	}
}
