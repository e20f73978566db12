package utils

import (
	"fmt"
	"time"

	"creditdesk/internal/models"
)

func SendDecisionEmail(to, name string, tx models.Transaction) error {
	verdict := "Approved"
	color := "#0a4d3c"
	if tx.Status == models.StatusRejected {
		verdict = "Rejected"
		color = "#d9534f"
	}

	subject := fmt.Sprintf("Your transaction request was %s", verdict)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<title>Transaction %s</title>
	<style>
		body {
			font-family: 'Segoe UI', Roboto, Arial, sans-serif;
			background-color: #f6f8f7;
			margin: 0;
			padding: 0;
			color: #333;
		}
		.container {
			max-width: 480px;
			margin: 25px auto;
			background: #ffffff;
			border-radius: 12px;
			box-shadow: 0 4px 16px rgba(0, 0, 0, 0.08);
			overflow: hidden;
			border-top: 5px solid %s;
		}
		.header {
			background-color: %s;
			color: #ffffff;
			text-align: center;
			padding: 18px 12px;
		}
		.content { padding: 20px 18px; font-size: 14px; line-height: 1.6; color: #444; }
		.amount-box {
			background: #f7f9f8;
			border: 1px solid #dde5e0;
			border-radius: 8px;
			padding: 12px 14px;
			margin: 16px 0;
			text-align: center;
		}
		.footer {
			background: #f0f6f2;
			text-align: center;
			padding: 14px;
			font-size: 12px;
			color: #777;
			border-top: 1px solid #e5e5e5;
		}
	</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>Transaction %s</h1></div>
			<div class="content">
				<p>Hi %s,<br><br>
				An administrator has <b>%s</b> your transaction request of <b>$%s</b>.</p>
				<div class="amount-box">
					<p>Description: %s</p>
					<p>Requested: %s</p>
				</div>
			</div>
			<div class="footer">&copy; %d CreditDesk</div>
		</div>
	</body>
	</html>
	`, verdict, color, color, verdict, name, verdict, tx.Amount.StringFixed(2), tx.Description, tx.CreatedAt.Format("3:04 PM, Jan 2 2006"), time.Now().Year())

	return SendEmail(to, subject, body)
}
