package utils

import (
	"fmt"
	"time"
)

func SendPendingReminderEmail(to string, pendingCount int, oldest time.Time) error {
	subject := fmt.Sprintf("Reminder: %d transaction request(s) awaiting review", pendingCount)

	body := fmt.Sprintf(`
	<!DOCTYPE html>
	<html lang="en">
	<head>
	<meta charset="UTF-8">
	<title>Pending Reviews</title>
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
			border-top: 5px solid #b8860b;
		}
		.header {
			background-color: #b8860b;
			color: #ffffff;
			text-align: center;
			padding: 18px 12px;
		}
		.content { padding: 20px 18px; font-size: 14px; line-height: 1.6; color: #444; }
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
			<div class="header"><h1>Requests Awaiting Review</h1></div>
			<div class="content">
				<p>There are <b>%d</b> pending transaction request(s) in the queue.
				The oldest has been waiting since <b>%s</b>.</p>
				<p>Please review them from the admin dashboard.</p>
			</div>
			<div class="footer">&copy; %d CreditDesk</div>
		</div>
	</body>
	</html>
	`, pendingCount, oldest.Format("Jan 2 2006"), time.Now().Year())

	return SendEmail(to, subject, body)
}
