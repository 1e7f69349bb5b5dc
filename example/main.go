package main

// This is an example program to demonstrate the usage of the package. It
// reads the heater address from the environment (or a .env file), drives the
// client from single key presses and prints a status line every poll.

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/stoneconnect-io/stoneconnect"

	"github.com/eiannone/keyboard"
	_ "github.com/joho/godotenv/autoload"
)

const LOG_FILE = "stoneconnect.log"
const WITH_HTTP_CLIENT_LOGGING = true // Set this to false if you want no http client logging

const MANUAL_TEMPERATURE = 21.0
const BOOST_TEMPERATURE = 25.0

func settingsFromEnv() (stoneconnect.Settings, error) {
	settings := stoneconnect.Settings{
		Host:     os.Getenv("HEATER_HOST"),
		Username: os.Getenv("HEATER_USERNAME"),
		Password: os.Getenv("HEATER_PASSWORD"),
	}
	if settings.Host == "" {
		return settings, fmt.Errorf("HEATER_HOST is not set")
	}
	if p := os.Getenv("HEATER_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return settings, fmt.Errorf("invalid HEATER_PORT: %w", err)
		}
		settings.Port = port
	}
	return settings, nil
}

func readKey(input chan rune) {
	for {
		char, _, err := keyboard.GetSingleKey()
		if err != nil {
			log.Fatal(err)
		}
		input <- char
	}
}

func printKeyBinding() {
	fmt.Println("#############################################")
	fmt.Println("Choose an action:")
	fmt.Println("   i = Read device info")
	fmt.Println("   s = Read device status")
	fmt.Println("   w = Read weekly schedule")
	fmt.Println("   1 = Power mode HIGH")
	fmt.Println("   2 = Power mode MEDIUM")
	fmt.Println("   3 = Power mode LOW")
	fmt.Println("   c = Comfort mode")
	fmt.Println("   e = Eco mode")
	fmt.Println("   a = Antifreeze mode")
	fmt.Printf("   m = Manual mode at %.1f°C\n", MANUAL_TEMPERATURE)
	fmt.Printf("   b = Boost mode at %.1f°C\n", BOOST_TEMPERATURE)
	fmt.Println("   0 = Standby")
	fmt.Println("   h = Show key bindings")
	fmt.Println("   q = Quit")
	fmt.Println("#############################################")
	fmt.Println("")
}

// Implementation of the logger interface of the stoneconnect library
type SLogger struct {
	logger *log.Logger
}

func NewSLogLogger(logFile *os.File) *SLogger {
	logger := log.New(logFile, "stoneconnectlogger: ", log.Lshortfile)
	return &SLogger{logger: logger}
}

func (l *SLogger) Printf(msg string, arg ...any) {
	l.logger.Println("Debug: ", fmt.Sprintf(msg, arg...))
}

func fmtTemperature(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f°C", *v)
}

func fmtMode(m *stoneconnect.OperationMode) string {
	if m == nil {
		return "unknown"
	}
	return m.String()
}

// Main program
func main() {
	var logFile *os.File
	var err error
	if LOG_FILE != "" {
		logFile, err = os.OpenFile(LOG_FILE, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Println("Error opening log file:", err)
			os.Exit(1)
		}
	} else {
		logFile = os.Stderr
	}
	logger := log.New(logFile, "stoneconnect: ", log.Lshortfile)

	fmt.Println("Sample program to show how to use the stoneconnect library functions.")
	fmt.Println("")

	fmt.Println("First step: Reading heater address from environment")
	settings, err := settingsFromEnv()
	if err != nil {
		logger.Fatal(err)
	}

	fmt.Println("Second step: Creating the heater client")
	opts := []stoneconnect.Option{stoneconnect.WithLogger(NewSLogLogger(logFile))}
	if WITH_HTTP_CLIENT_LOGGING {
		clientlogger := log.New(logFile, "client: ", log.Lshortfile)
		opts = append(opts, stoneconnect.WithRequestLogging(clientlogger))
	}
	heater, err := stoneconnect.NewClient(settings, opts...)
	if err != nil {
		logger.Fatal(err)
	}
	defer heater.Close()

	fmt.Println("Third step: Reading device info")
	info, err := heater.GetInfo()
	if err != nil {
		logger.Fatal(err)
	}
	if info.ApplianceName != nil {
		fmt.Println("   Appliance:", *info.ApplianceName)
	}
	if info.FWVersion != nil {
		fmt.Println("   Firmware:", *info.FWVersion)
	}
	fmt.Printf("   Mode: %s  Setpoint: %s\n", fmtMode(info.OperativeMode), fmtTemperature(info.SetPoint))

	// The monitor polls the status endpoint and publishes every reading
	monitor := stoneconnect.NewMonitor(heater,
		stoneconnect.WithInterval(30*time.Second),
		stoneconnect.WithMonitorLogger(NewSLogLogger(logFile)),
	)
	if err := monitor.OnStatus(func(status stoneconnect.Status) {
		fmt.Printf("   Status: mode=%s setpoint=%s", fmtMode(status.OperativeMode), fmtTemperature(status.SetPoint))
		if status.PowerConsumptionWatt != nil {
			fmt.Printf(" power=%dW", *status.PowerConsumptionWatt)
		}
		if status.RSSI != nil {
			fmt.Printf(" rssi=%d", *status.RSSI)
		}
		fmt.Println("")
	}); err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := monitor.Run(ctx); err != nil && err != context.Canceled {
			logger.Println(err)
		}
	}()

	// Create a channel to read, if a key was pressed
	if err := keyboard.Open(); err != nil {
		panic(err)
	}
	input := make(chan rune, 1)
	go readKey(input)
	printKeyBinding()

	for i := range input {
		switch i {
		case 'i':
			fmt.Println("Reading device info")
			info, err := heater.GetInfo()
			if err != nil {
				fmt.Println(" An error occurred. ", err)
				logger.Println(err)
				continue
			}
			fmt.Printf("   Mode: %s  Setpoint: %s\n", fmtMode(info.OperativeMode), fmtTemperature(info.SetPoint))
			fmt.Printf("   Presets: comfort=%s eco=%s antifreeze=%s\n",
				fmtTemperature(info.ComfortSetpoint), fmtTemperature(info.EcoSetpoint), fmtTemperature(info.AntifreezeSetpoint))
		case 's':
			fmt.Println("Reading device status")
			status, err := heater.GetStatus()
			if err != nil {
				fmt.Println(" An error occurred. ", err)
				logger.Println(err)
				continue
			}
			fmt.Printf("   Mode: %s  Setpoint: %s\n", fmtMode(status.OperativeMode), fmtTemperature(status.SetPoint))
		case 'w':
			fmt.Println("Reading weekly schedule")
			schedule, err := heater.GetSchedule()
			if err != nil {
				fmt.Println(" An error occurred. ", err)
				logger.Println(err)
				continue
			}
			for _, day := range schedule.WeeklySchedule {
				fmt.Printf("   Day %d: %d slots\n", day.WeekDay, len(day.ScheduleSlots))
			}
		case '1':
			fmt.Println("Setting power mode HIGH")
			reportError(logger, heater.SetPowerMode(stoneconnect.HIGH))
		case '2':
			fmt.Println("Setting power mode MEDIUM")
			reportError(logger, heater.SetPowerMode(stoneconnect.MEDIUM))
		case '3':
			fmt.Println("Setting power mode LOW")
			reportError(logger, heater.SetPowerMode(stoneconnect.LOW))
		case 'c':
			fmt.Println("Setting comfort mode")
			reportError(logger, heater.SetComfortMode())
		case 'e':
			fmt.Println("Setting eco mode")
			reportError(logger, heater.SetEcoMode())
		case 'a':
			fmt.Println("Setting antifreeze mode")
			reportError(logger, heater.SetAntifreezeMode())
		case 'm':
			fmt.Printf("Setting manual mode at %.1f°C\n", MANUAL_TEMPERATURE)
			reportError(logger, heater.SetManualTemperature(MANUAL_TEMPERATURE))
		case 'b':
			fmt.Printf("Setting boost mode at %.1f°C\n", BOOST_TEMPERATURE)
			reportError(logger, heater.SetTemperature(BOOST_TEMPERATURE, stoneconnect.BOOST))
		case '0':
			fmt.Println("Setting standby")
			reportError(logger, heater.SetStandby())
		case 'h':
			printKeyBinding()
		case 'q':
			_ = keyboard.Close()
			return
		default:
			fmt.Println("You pressed a key without a function. Press h to get help")
		}
	}
}

func reportError(logger *log.Logger, err error) {
	if err != nil {
		fmt.Println(" An error occurred. ", err)
		logger.Println(err)
	}
}
