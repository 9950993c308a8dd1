package branch

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда у филиала нет сохранённых настроек
	ErrSettingsNotFound = errors.New("branch.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("branch.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("branch.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("branch.repository: failed to scan row")

	// ErrEncodeHours возвращается, если часы работы не удалось сериализовать
	ErrEncodeHours = errors.New("branch.repository: failed to encode operating hours")
)
