package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/watch --output domain/watch --outpkg watchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/snapshot --output domain/snapshot --outpkg snapshotmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/audit --output domain/audit --outpkg auditmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/tournament --output domain/tournament --outpkg tournamentmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../provider --output provider --outpkg providermock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name WatchLimitStore --dir ../usecase --output usecase --outpkg usecasemock --filename watch_limit_store_mock.go
