package incidentService

import (
	"ProjectPlacas/internal/api/incident"
	"ProjectPlacas/internal/api/plate"
	"ProjectPlacas/internal/api/vehicle"
	"ProjectPlacas/internal/entity"
	contextPkg "ProjectPlacas/pkg/context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// CreateIncident resolves the reported plate to a registered vehicle,
// uploads the photos to S3, persists the incident and finally notifies the
// vehicle owner and the reporter by email. The notification is best-effort:
// a send failure is logged but never undoes the stored incident.
func (s *incidentService) CreateIncident(ctx context.Context, req incident.CreateIncidentRequest, mainImage []byte, evidence [][]byte) (*incident.IncidentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	placa := plate.Normalize(req.Placa)

	vehicleRepo, err := s.vehicleRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create vehicle client")
		return nil, err
	}

	reported, err := vehicleRepo.Vehicles.GetByPlate(ctx, placa)
	if err != nil {
		if errors.Is(err, vehicle.ErrVehicleNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"placa":      placa,
			}).Warn("No vehicle registered for reported plate")
			return nil, incident.ErrVehicleNotFound
		}
		return nil, err
	}

	mainURL, evidenceURLs, err := s.uploadImages(requestID, mainImage, evidence)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", incident.ErrCreateIncident, err)
	}

	ULID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return nil, err
	}

	newIncident := entity.Incident{
		ID:           ULID,
		VehicleID:    reported.ID,
		ReporterID:   req.ReporterID,
		Descripcion:  req.Descripcion,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Fecha:        time.Now(),
		MainImageURL: mainURL,
		Evidence:     evidenceURLs,
	}

	repo, err := s.incidentRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	if err := repo.Incidents.CreateIncident(ctx, newIncident); err != nil {
		return nil, fmt.Errorf("%w: %s", incident.ErrCreateIncident, err)
	}

	s.notifyParties(ctx, requestID, reported, newIncident, mainImage, evidence)

	return &incident.IncidentResponse{
		ID:            newIncident.ID,
		VehicleID:     newIncident.VehicleID,
		PlacaVehiculo: reported.Placa,
		ReporterID:    newIncident.ReporterID,
		Descripcion:   newIncident.Descripcion,
		Lat:           newIncident.Lat,
		Lng:           newIncident.Lng,
		Fecha:         newIncident.Fecha,
		MainImageURL:  newIncident.MainImageURL,
		Evidence:      newIncident.Evidence,
	}, nil
}

func (s *incidentService) ListIncidents(ctx context.Context) ([]incident.IncidentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.incidentRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create new client")
		return nil, err
	}

	incidents, err := repo.Incidents.ListIncidents(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]incident.IncidentResponse, 0, len(incidents))
	for _, in := range incidents {
		evidence := make([]string, 0, len(in.Evidence))
		for _, url := range in.Evidence {
			evidence = append(evidence, s.presign(requestID, url))
		}

		responses = append(responses, incident.IncidentResponse{
			ID:            in.ID,
			VehicleID:     in.VehicleID,
			PlacaVehiculo: in.PlacaVehiculo,
			ReporterID:    in.ReporterID,
			ReporterName:  in.ReporterName,
			Descripcion:   in.Descripcion,
			Lat:           in.Lat,
			Lng:           in.Lng,
			Fecha:         in.Fecha,
			MainImageURL:  s.presign(requestID, in.MainImageURL),
			Evidence:      evidence,
			CreatedAt:     in.CreatedAt,
		})
	}

	return responses, nil
}

// presign swaps a stored S3 URL for a short-lived presigned one. Falls
// back to the stored URL when presigning fails so a listing never breaks
// over a single object.
func (s *incidentService) presign(requestID string, url string) string {
	if url == "" {
		return url
	}

	presigned, err := s.s3.PresignUrl(url)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to presign image URL")
		return url
	}

	return presigned
}

func (s *incidentService) uploadImages(requestID string, mainImage []byte, evidence [][]byte) (string, []string, error) {
	name, err := s.utils.UniqueImageName(time.Now())
	if err != nil {
		return "", nil, err
	}

	mainURL, err := s.s3.UploadBytes("incidencias/"+name, mainImage, "image/jpeg")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload main image")
		return "", nil, err
	}

	evidenceURLs := make([]string, 0, len(evidence))
	for i, img := range evidence {
		name, err := s.utils.UniqueImageName(time.Now())
		if err != nil {
			return "", nil, err
		}

		url, err := s.s3.UploadBytes(fmt.Sprintf("incidencias/evidencias/%d_%s", i, name), img, "image/jpeg")
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to upload evidence image")
			return "", nil, err
		}
		evidenceURLs = append(evidenceURLs, url)
	}

	return mainURL, evidenceURLs, nil
}

func (s *incidentService) notifyParties(ctx context.Context, requestID string, reported entity.Vehicle, in entity.Incident, mainImage []byte, evidence [][]byte) {
	authRepo, err := s.authRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create auth client for notification")
		return
	}

	subject := fmt.Sprintf("Nueva incidencia reportada — placa %s", reported.Placa)
	body := incidentMailBody(reported, in)

	recipients := map[string]string{}
	if owner, err := authRepo.Users.GetByID(ctx, reported.UserID); err == nil {
		recipients[owner.Email] = "owner"
	} else {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id_usuario": reported.UserID,
		}).Warn("Could not resolve vehicle owner for notification")
	}
	if reporter, err := authRepo.Users.GetByID(ctx, in.ReporterID); err == nil {
		recipients[reporter.Email] = "reporter"
	} else {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"id_usuario": in.ReporterID,
		}).Warn("Could not resolve reporter for notification")
	}

	for email, role := range recipients {
		if err := s.smtp.SendIncidentMail(email, subject, body, mainImage, evidence); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"recipient":  role,
				"error":      err.Error(),
			}).Error("Failed to send incident notification")
			continue
		}
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"recipient":  role,
		}).Info("Incident notification sent")
	}
}

func incidentMailBody(reported entity.Vehicle, in entity.Incident) string {
	return fmt.Sprintf(`
<h2>Incidencia reportada</h2>
<p><b>Placa:</b> %s</p>
<p><b>Vehículo:</b> %s %s (%s)</p>
<p><b>Descripción:</b> %s</p>
<p><b>Ubicación:</b> <a href="https://www.google.com/maps?q=%f,%f">%f, %f</a></p>
<p><b>Fecha:</b> %s</p>
`,
		reported.Placa,
		reported.Marca, reported.Modelo, reported.Color,
		in.Descripcion,
		in.Lat, in.Lng, in.Lat, in.Lng,
		in.Fecha.Format("02/01/2006 15:04"),
	)
}
