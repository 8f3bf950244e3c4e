package webui

type categoryResponse struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

type categoriesResponse struct {
	Categories []categoryResponse `json:"categories"`
}

type importResponse struct {
	Source           string `json:"source"`
	CategoriesMerged int    `json:"categories_merged"`
}

type startQuizRequest struct {
	Category string `json:"category"`
}

type quizStateResponse struct {
	Category      string `json:"category"`
	Status        string `json:"status"`
	Question      string `json:"question,omitempty"`
	AnsweredCount int    `json:"answered_count"`
	TotalCount    int    `json:"total_count"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}
