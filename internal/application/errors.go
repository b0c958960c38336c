package application

import (
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-catalog-api/internal/domain/apperror"
	"github.com/oksasatya/go-catalog-api/pkg/helpers"
)

// storeFailure logs an unexpected collaborator error once and wraps it as a store error.
func storeFailure(logger *logrus.Logger, msg string, err error, fields logrus.Fields) error {
	helpers.LogError(logger, msg, err, fields)
	return apperror.Store(err)
}
