package console

type MessageKind string

const (
	MessageError   MessageKind = "error"
	MessageSuccess MessageKind = "success"
)

// Message - временное уведомление представления, висит до DismissMessage
// или до следующего сообщения
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

func errorMessage(text string) *Message {
	return &Message{Kind: MessageError, Text: text}
}

func successMessage(text string) *Message {
	return &Message{Kind: MessageSuccess, Text: text}
}

const (
	msgLoadAdvertisementsFailed = "Не удалось загрузить объявления"
	msgCreateFailed             = "Не удалось создать объявление"
	msgDeleteFailed             = "Не удалось удалить объявление"
	msgNoAdvertisements         = "Объявления не найдены"

	msgLoadAdvertisementFailed = "Не удалось загрузить объявление"
	msgAdvertisementNotFound   = "Объявление не найдено"
	msgUpdateFailed            = "Не удалось обновить объявление"
	msgUpdated                 = "Объявление успешно обновлено"

	msgLoadOrdersFailed         = "Не удалось загрузить заказы"
	msgCompleteFailed           = "Не удалось завершить заказ"
	msgNoOrders                 = "Заказов не найдено"
	msgNoOrdersForAdvertisement = "Заказов с выбранным товаром не найдено"
)
