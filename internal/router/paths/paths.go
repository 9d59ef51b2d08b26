// Package paths строит адреса страниц заявок поставщика.
package paths

import (
	"fmt"
	"net/url"
)

const (
	Prefix  = "/suppliers/opportunities"
	Account = "/suppliers"
)

// Opportunity - публичная страница брифа.
func Opportunity(frameworkFamily string, briefID int) string {
	return fmt.Sprintf("/%s/opportunities/%d", url.PathEscape(frameworkFamily), briefID)
}

func Start(briefID int) string {
	return fmt.Sprintf("%s/%d/responses/start", Prefix, briefID)
}

func Response(briefID, responseID int) string {
	return fmt.Sprintf("%s/%d/responses/%d", Prefix, briefID, responseID)
}

func Section(briefID, responseID int, section string) string {
	return Response(briefID, responseID) + "/" + url.PathEscape(section)
}

func EditSection(briefID, responseID int, section string) string {
	return Section(briefID, responseID, section) + "/edit"
}

// Application - страница проверки и отправки ответов.
func Application(briefID, responseID int) string {
	return Response(briefID, responseID) + "/application"
}

func Result(briefID int) string {
	return fmt.Sprintf("%s/%d/responses/result", Prefix, briefID)
}

func AskQuestion(briefID int) string {
	return fmt.Sprintf("%s/%d/ask-a-question", Prefix, briefID)
}

func QuestionAndAnswerSession(briefID int) string {
	return fmt.Sprintf("%s/%d/question-and-answer-session", Prefix, briefID)
}

func Dashboard(frameworkSlug string) string {
	return Prefix + "/frameworks/" + url.PathEscape(frameworkSlug)
}
