package create_booking

import "github.com/m04kA/NBNE-SignsBooking/internal/domain"

// Request модель запроса на отправку формы бронирования
type Request struct {
	SessionID string       // ID браузерной сессии (ключ hand-off)
	Origin    string       // Внешний адрес сайта, например https://book.nbnesigns.co.uk
	Draft     domain.Draft // Черновик в фазе EDITING или SUBMIT_FAILED
}

// Response модель ответа после создания бронирования
type Response struct {
	BookingID       int64        // ID созданного бронирования
	RequiresPayment bool         // Нужна ли оплата депозита
	RedirectURL     string       // Куда отправить браузер (checkout или страница успеха)
	Message         string       // Информационное сообщение API (может быть пустым)
	Draft           domain.Draft // Черновик в фазе REDIRECTING_TO_*
}
