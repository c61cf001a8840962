package bdd

import "github.com/cucumber/godog"

// Feature: 私訊功能
//   In order to keep in touch with classmates
//   As verified alumni members
//   I want to exchange direct messages and see unread counts

//   Background:
//     Given "memberA" 已登入並取得 Token "tokenA"
//     And "memberB" 已登入並取得 Token "tokenB"

//   Scenario: 發送與接收訊息
//     When "memberA" 發送私訊 "Hello B!" 給 "memberB"
//     Then "memberB" 應該收到私訊 "Hello B!"
//     And "memberB" 的未讀數 應該是 1

//   Scenario: 已讀回報
//     Given "memberA" 已發送私訊 "Hello B!" 給 "memberB"
//     When "memberB" 標記與 "memberA" 的對話為已讀
//     Then "memberB" 的未讀數 應該是 0

func memberSendsDirectMessage(arg1, arg2, arg3 string) error {
	return godog.ErrPending
}

func memberReceivesDirectMessage(arg1, arg2 string) error {
	return godog.ErrPending
}

func unreadCountShouldBe(arg1 string, arg2 int) error {
	return godog.ErrPending
}

func memberMarksConversationRead(arg1, arg2 string) error {
	return godog.ErrPending
}

func memberToken(arg1, arg2 string) error {
	return godog.ErrPending
}

func InitializeMessagingScenario(ctx *godog.ScenarioContext) {
	ctx.Step(`^"([^"]*)" 發送私訊 "([^"]*)" 給 "([^"]*)"$`, memberSendsDirectMessage)
	ctx.Step(`^"([^"]*)" 應該收到私訊 "([^"]*)"$`, memberReceivesDirectMessage)
	ctx.Step(`^"([^"]*)" 的未讀數 應該是 (\d+)$`, unreadCountShouldBe)
	ctx.Step(`^"([^"]*)" 標記與 "([^"]*)" 的對話為已讀$`, memberMarksConversationRead)
	ctx.Step(`^"([^"]*)" 已登入並取得 Token "([^"]*)"$`, memberToken)
}
