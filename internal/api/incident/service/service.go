package incidentService

import (
	authRepository "ProjectPlacas/internal/api/auth/repository"
	"ProjectPlacas/internal/api/incident"
	incidentRepository "ProjectPlacas/internal/api/incident/repository"
	vehicleRepository "ProjectPlacas/internal/api/vehicle/repository"
	"ProjectPlacas/pkg/s3"
	"ProjectPlacas/pkg/smtp"
	"ProjectPlacas/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IIncidentService interface {
	CreateIncident(ctx context.Context, req incident.CreateIncidentRequest, mainImage []byte, evidence [][]byte) (*incident.IncidentResponse, error)
	ListIncidents(ctx context.Context) ([]incident.IncidentResponse, error)
}

type incidentService struct {
	log                *logrus.Logger
	incidentRepository incidentRepository.Repository
	vehicleRepository  vehicleRepository.Repository
	authRepository     authRepository.Repository
	s3                 s3.ItfS3
	smtp               smtp.ItfSmtp
	utils              utils.IUtils
}

func NewIncidentService(
	log *logrus.Logger,
	incidentRepository incidentRepository.Repository,
	vehicleRepository vehicleRepository.Repository,
	authRepository authRepository.Repository,
	s3 s3.ItfS3,
	smtp smtp.ItfSmtp,
	utils utils.IUtils,
) IIncidentService {
	return &incidentService{
		log:                log,
		incidentRepository: incidentRepository,
		vehicleRepository:  vehicleRepository,
		authRepository:     authRepository,
		s3:                 s3,
		smtp:               smtp,
		utils:              utils,
	}
}
