package service

import (
	"context"

	"go.uber.org/zap"

	"vetclinic-service/internal/cache"
	"vetclinic-service/internal/domain/doctor"
)

// VisitDetailsService memoizes doctor timing profiles. Visit details have
// no mutation path in this service, so entries live until the process
// restarts (or the configured TTL fires).
type VisitDetailsService struct {
	repo  doctor.Repository
	cache cache.Cache
	log   *zap.Logger
}

func NewVisitDetailsService(repo doctor.Repository, c cache.Cache, log *zap.Logger) *VisitDetailsService {
	return &VisitDetailsService{repo: repo, cache: c, log: log}
}

func (s *VisitDetailsService) GetTimingDetails(ctx context.Context, doctorID int64) (doctor.TimingDetails, error) {
	key := idKey(doctorID)
	if timing, ok := cacheLookup[doctor.TimingDetails](ctx, s.cache, s.log, cache.NamespaceDoctorTimeDetails, key); ok {
		return timing, nil
	}

	timing, err := s.repo.TimingByDoctorID(ctx, doctorID)
	if err != nil {
		return doctor.TimingDetails{}, err
	}

	cacheStore(ctx, s.cache, s.log, cache.NamespaceDoctorTimeDetails, key, timing)
	return *timing, nil
}
