package repository

// Repositories объединяет репозитории хранилища викторин
type Repositories struct {
	Themes     ThemeRepository
	Questions  QuestionRepository
	Answers    AnswerRepository
	Statistics StatisticRepository
}

// Transactor выполняет fn с репозиториями, привязанными к одной транзакции.
// Ошибка из fn откатывает транзакцию и возвращается вызывающему.
type Transactor interface {
	WithinTransaction(fn func(repos Repositories) error) error
}
