package entity

// Panel видимая панель интерфейса. В каждый момент видна ровно одна.
type Panel string

const (
	PanelUpload  Panel = "upload"  // Выбор файла или камеры
	PanelCamera  Panel = "camera"  // Живое изображение с камеры
	PanelLoading Panel = "loading" // Запрос на анализ в полёте
	PanelResults Panel = "results" // Результат анализа
	PanelError   Panel = "error"   // Сообщение об ошибке
)

// ViewState всё, что нужно представлению для отрисовки текущей панели.
type ViewState struct {
	Panel   Panel
	Result  *AnalysisResult // только для PanelResults
	Scores  []EmotionScore  // Result.EmotionScores, отсортированные по убыванию
	Message string          // только для PanelError
}
