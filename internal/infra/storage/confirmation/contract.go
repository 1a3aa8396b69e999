package confirmation

import "github.com/m04kA/SMC-SalonCheckout/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
