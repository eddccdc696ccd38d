package services

import (
	"chatstat/internal/models"
	"chatstat/internal/providers"
	"chatstat/internal/statistic/interfaces"
	"chatstat/internal/structures"
)

type IdentityResolverInterface interface {
	LoadNames() (models.NameTable, error)
	Resolve(id models.ParticipantID, names models.NameTable) string
	MergeAndPersist(names, seen models.NameTable) (models.NameTable, int, error)
}

type IdentityResolver struct {
	path   string
	store  interfaces.NamesStoreInterface
	logger providers.Logger
}

func (r *IdentityResolver) LoadNames() (models.NameTable, error) {
	names, err := r.store.Load(r.path)
	if err != nil {
		return nil, err
	}
	r.logger.Debugf(providers.TypeApp, "Loaded %d names from %s", len(names), r.path)
	return names, nil
}

func (r *IdentityResolver) Resolve(id models.ParticipantID, names models.NameTable) string {
	return names.Resolve(id)
}

// MergeAndPersist adds unknown ids from seen to names and rewrites the whole
// table. Known names are kept as they are.
func (r *IdentityResolver) MergeAndPersist(names, seen models.NameTable) (models.NameTable, int, error) {
	if names == nil {
		names = make(models.NameTable, len(seen))
	}
	added := names.Merge(seen)
	if err := r.store.Save(r.path, names); err != nil {
		return names, added, err
	}
	return names, added, nil
}

func NewIdentityResolver(conf *structures.Config, store interfaces.NamesStoreInterface, logger providers.Logger) IdentityResolverInterface {
	return &IdentityResolver{
		path:   conf.Sources.NamesPath,
		store:  store,
		logger: logger,
	}
}
