package mocks

//go:generate mockery --name Source --srcpkg github.com/salesdash-lab/salesdash/internal/ingestion --output ./ingestion --outpkg ingestionmocks --with-expecter
//go:generate mockery --name DatasetProvider --srcpkg github.com/salesdash-lab/salesdash/internal/projection --output ./projection --outpkg projectionmocks --with-expecter
